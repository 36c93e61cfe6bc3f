package replicate

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/storage"
)

// FromArgsOption configures a FromArgs call.
type FromArgsOption func(*fromArgsConfig)

type fromArgsConfig struct {
	allowSkipInputs bool
	logger          core.Logger
}

// WithAllowSkipInputs permits inputs in dest with no matching key in src to
// be left unconnected instead of failing FromArgs outright. A skip is
// never silent: it is always reported through the configured logger
// (WithFromArgsLogger), defaulting to core's package-level logger.
func WithAllowSkipInputs(v bool) FromArgsOption {
	return func(c *fromArgsConfig) { c.allowSkipInputs = v }
}

// WithFromArgsLogger sets the logger used to report skipped inputs.
func WithFromArgsLogger(l core.Logger) FromArgsOption {
	return func(c *fromArgsConfig) { c.logger = l }
}

// FromArgs wires every unconnected *core.Input leaf in dest to the
// like-keyed *core.Output leaf in src (key-matched wiring across two
// NodeStorage containers, the Go rendering of `replicate_from_args`).
func FromArgs(dest, src *storage.NodeStorage, opts ...FromArgsOption) error {
	cfg := fromArgsConfig{logger: core.GetDefaultLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return dest.Walk(func(path string, v any) error {
		in, ok := v.(*core.Input)
		if !ok || in.Connected() {
			return nil
		}
		outv, ok := src.Get(path)
		if !ok {
			if cfg.allowSkipInputs {
				cfg.logger.Warn("replicate.FromArgs: no matching output for input %q, skipping", path)
				return nil
			}
			return core.NewError(core.KindConnection, "replicate.FromArgs: no matching output for input "+path)
		}
		out, ok := outv.(*core.Output)
		if !ok {
			return core.NewError(core.KindConnection, "replicate.FromArgs: matched value for "+path+" is not an output")
		}
		return out.ConnectTo(in, false)
	})
}
