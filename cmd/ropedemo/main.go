// Package main provides ropedemo, a demonstration and smoke test for
// spanning ropes. It inserts random keys into a rope and reports the
// resulting segmentation.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/spanrope"
	"github.com/npillmayer/spanrope/splitcast"
)

func main() {
	exitCode := run(os.Args, os.Stdout)
	os.Exit(exitCode)
}

type options struct {
	count   int
	maxKey  uint
	seed    uint64
	dotfile string
	trace   string
	watch   bool
	leaves  bool
	quiet   bool
}

// run executes the demo and returns an exit code.
func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("ropedemo", flag.ContinueOnError)
	fs.SetOutput(out)
	opts := options{}
	fs.IntVar(&opts.count, "n", 99, "number of random inserts")
	fs.UintVar(&opts.maxKey, "max", 100, "keys are drawn from [0, max)")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (0 = time based)")
	fs.StringVar(&opts.dotfile, "dot", "", "write the segment tree in Graphviz DOT format to `file`")
	fs.StringVar(&opts.trace, "trace", "error", "trace level: error, info or debug")
	fs.BoolVar(&opts.watch, "watch", false, "print split events as they happen")
	fs.BoolVar(&opts.leaves, "leaves", false, "list all leaf segments")
	fs.BoolVar(&opts.quiet, "q", false, "do not print the key count after every insert")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if opts.count < 0 || opts.maxKey == 0 {
		fmt.Fprintln(out, "Error: -n must be >= 0 and -max must be > 0")
		return 2
	}
	level, ok := traceLevel(opts.trace)
	if !ok {
		fmt.Fprintf(out, "Error: unknown trace level %q\n", opts.trace)
		return 2
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(level)

	rep := newReport(out)
	if err := bytePair(rep); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	rope, err := randomRope(rep, opts)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	rep.summary(rope)
	if opts.leaves {
		rep.leaves(rope)
	}
	if opts.dotfile != "" {
		if err := writeDot(rope, opts.dotfile); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func traceLevel(s string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(s) {
	case "error":
		return tracing.LevelError, true
	case "info":
		return tracing.LevelInfo, true
	case "debug":
		return tracing.LevelDebug, true
	}
	return tracing.LevelError, false
}

// bytePair stores two byte-slice keys and reads the first one back.
func bytePair(rep *report) error {
	cfg := spanrope.Config[[]byte]{Compare: bytes.Compare}
	rope, err := spanrope.NewWithConfig[[]byte, []byte](cfg,
		spanrope.Unbounded[[]byte](), spanrope.Unbounded[[]byte]())
	if err != nil {
		return err
	}
	k, kprime := []byte("abc"), []byte("abd")
	v, vprime := []byte("123"), []byte("124")
	if err = rope.Insert(k, v); err != nil {
		return err
	}
	if err = rope.Insert(kprime, vprime); err != nil {
		return err
	}
	got, ok, err := rope.Get(k)
	if err != nil {
		return err
	}
	if !ok || !bytes.Equal(got, v) {
		return fmt.Errorf("lookup of %q returned %q, expected %q", k, got, v)
	}
	rep.row("key count", rope.KeyCount())
	return nil
}

// randomRope inserts opts.count random keys into a fresh rope.
func randomRope(rep *report, opts options) (*spanrope.Node[uint32, uint32], error) {
	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := rand.New(rand.NewPCG(seed, seed))
	cfg := spanrope.OrderedConfig[uint32]()
	if opts.watch {
		stopWatching, err := watchSplits(rep, &cfg)
		if err != nil {
			return nil, err
		}
		defer stopWatching()
	}
	rope, err := spanrope.NewWithConfig[uint32, uint32](cfg,
		spanrope.Unbounded[uint32](), spanrope.Unbounded[uint32]())
	if err != nil {
		return nil, err
	}
	for i := 1; i <= opts.count; i++ {
		k := rnd.Uint32N(uint32(opts.maxKey))
		if err := rope.Insert(k, uint32(i)); err != nil {
			return nil, err
		}
		if !opts.quiet {
			rep.row("key count", rope.KeyCount())
		}
	}
	return rope, nil
}

// watchSplits prints split events of a rope configured with cfg. The returned
// function waits for pending events to be printed, then stops watching.
func watchSplits(rep *report, cfg *spanrope.Config[uint32]) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	bc := splitcast.New[uint32](ctx)
	events, err := bc.Subscribe(ctx, 64)
	if err != nil {
		cancel()
		return nil, err
	}
	var published, printed atomic.Int64
	hook := bc.Hook()
	cfg.OnSplit = func(e spanrope.SplitEvent[uint32]) {
		published.Add(1)
		hook(e)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range events {
			rep.event(e)
			printed.Add(1)
		}
	}()
	return func() {
		deadline := time.Now().Add(time.Second)
		for printed.Load() < published.Load() && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		bc.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}, nil
}

func writeDot(rope *spanrope.Node[uint32, uint32], name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return spanrope.Rope2Dot(rope, f)
}
