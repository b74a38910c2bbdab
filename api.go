package main

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"unicode/utf8"

	"github.com/smacro/smac/internal/flushio"
	"github.com/smacro/smac/internal/panicerr"
)

// New builds an Engine the way the CLI and tests do: defaults applied first,
// then caller options layered on top.
func New(opts ...EngineOption) *Engine {
	cfg := defaultEngineConfig()
	EngineOptions(opts...).apply(&cfg)
	e := &Engine{
		table: newTable(),
		ws:    newWorkspace(flushio.NewWriteFlusher(cfg.sink), cfg.arenaLimit, cfg.arenaDepth),
		logfn: cfg.logfn,
	}
	installBuiltins(e.table)
	return e
}

// Run feeds in to completion, checking ctx between top-level runes so a
// caller-supplied deadline can abort a runaway expansion. It recovers any
// panic raised while evaluating (e.g. an index out of range bug in a
// built-in) the way the reference CLI recovers a fatal signal.
func (e *Engine) Run(ctx context.Context, in io.RuneReader) error {
	if err := e.StartExpand(nil); err != nil {
		return err
	}

	err := panicerr.Recover("macro expansion", func() error {
		var buf [utf8.UTFMax]byte
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, _, err := in.ReadRune()
			if err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			n := utf8.EncodeRune(buf[:], r)
			for i := 0; i < n; i++ {
				if err := e.Feed(buf[i]); err != nil {
					return err
				}
			}
			if err := e.FlushSink(); err != nil {
				return err
			}
		}
		if e.Expanding() {
			return errors.New("input ended in middle of macro expansion")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func WithArenaLimit(n int) EngineOption { return arenaLimitOption(n) }
func WithArenaDepth(n int) EngineOption { return arenaDepthOption(n) }
func WithSink(w io.Writer) EngineOption { return sinkOption{w} }
func WithLogf(logfn func(mess string, args ...interface{})) EngineOption {
	return withLogfn(logfn)
}

type EngineOption interface{ apply(cfg *engineConfig) }

type engineConfig struct {
	arenaLimit int
	arenaDepth int
	sink       io.Writer
	logfn      func(mess string, args ...interface{})
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		arenaLimit: defaultArenaLimit,
		arenaDepth: defaultArenaDepth,
		sink:       ioutil.Discard,
		logfn:      func(string, ...interface{}) {},
	}
}

func EngineOptions(opts ...EngineOption) EngineOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(cfg *engineConfig) {}

type options []EngineOption

func (opts options) apply(cfg *engineConfig) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(cfg *engineConfig) { cfg.logfn = logfn }

type arenaLimitOption int
type arenaDepthOption int
type sinkOption struct{ io.Writer }

func (n arenaLimitOption) apply(cfg *engineConfig) { cfg.arenaLimit = int(n) }
func (n arenaDepthOption) apply(cfg *engineConfig) { cfg.arenaDepth = int(n) }
func (o sinkOption) apply(cfg *engineConfig)       { cfg.sink = o.Writer }
