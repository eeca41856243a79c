/*
Package spanrope implements a spanning rope, an in-memory ordered key/value
index which partitions a totally ordered key domain into contiguous segments.

Spanning Ropes

A spanning rope is a rope-like construct spanning the total ordering of an
entire namespace. Where a rope organizes fragments of text in a tree of
contiguous spans, a spanning rope organizes key/value entries in a tree of
contiguous key ranges. No a priori knowledge of the namespace is necessary:
clients insert keys of any totally ordered type and the rope partitions the
namespace as entries arrive.

Every node is authoritative for a range of keys. A fresh node stores its
entries in a leaf. As soon as a leaf would hold more than a threshold of
entries, it is split at its middle key into two child segments, the left one
covering the keys below the split key, the right one covering the split key
and everything above it. Lookups and inserts descend the tree by range
ownership.

	rope := spanrope.NewRoot[string, string]()
	rope.Insert("abc", "123")
	v, ok, err := rope.Get("abc")

Entries are never deleted and segments are never merged.

Concurrency

Nodes are not safe for concurrent mutation. Insert requires exclusive access
to the whole rope, Get and the statistics functions only shared access.
Type Guarded serializes access with a single lock.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package spanrope

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
