package spanrope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"cmp"
	"fmt"
)

// MaxSegmentSize is the default number of entries a leaf segment holds
// before it is split.
const MaxSegmentSize = 10

// Config configures a spanning rope. All nodes of a rope share one Config.
type Config[K any] struct {
	// Compare defines the total order of keys. It returns a negative number
	// for a < b, zero for a == b and a positive number for a > b.
	Compare func(a, b K) int
	// MaxSegmentSize is the split threshold for leaf segments. Zero selects
	// the package default MaxSegmentSize.
	MaxSegmentSize int
	// OnSplit, if set, is called synchronously after every split.
	OnSplit func(SplitEvent[K])
}

// OrderedConfig returns a default configuration for naturally ordered keys.
func OrderedConfig[K cmp.Ordered]() Config[K] {
	return Config[K]{Compare: cmp.Compare[K]}
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.MaxSegmentSize == 0 {
		cfg.MaxSegmentSize = MaxSegmentSize
	}
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Compare == nil {
		return fmt.Errorf("%w: key comparison is required", ErrInvalidConfig)
	}
	// the split rank MaxSegmentSize/2 must leave a non-empty left segment
	if cfg.MaxSegmentSize < 2 {
		return fmt.Errorf("%w: max segment size must be >= 2, is %d",
			ErrInvalidConfig, cfg.MaxSegmentSize)
	}
	return nil
}
