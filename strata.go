package strata

import (
	"log/slog"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/internal/validator"
	"github.com/aretw0/strata/pkg/layout"
	"github.com/aretw0/strata/pkg/netdef"
)

// Version is the release version reported by the CLI.
var Version = "0.3.0"

// Planner is the high-level entry point for the Strata library.
// It wraps validation and the layout pipeline behind a simplified API.
type Planner struct {
	logger   *slog.Logger
	validate bool
	strict   bool
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithoutValidation skips the wiring validator. Useful when the caller
// has already validated the definition through another path.
func WithoutValidation() Option {
	return func(p *Planner) {
		p.validate = false
	}
}

// WithStrictValidation promotes validator warnings (layers unreachable
// from any source layer) to errors.
func WithStrictValidation() Option {
	return func(p *Planner) {
		p.strict = true
	}
}

// New initializes a Planner.
func New(opts ...Option) *Planner {
	p := &Planner{
		logger:   logging.NewNop(),
		validate: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan computes the buffer layout for a network definition. Any error
// is a configuration error in the definition: there is no partial plan
// and nothing to retry.
func (p *Planner) Plan(reg *netdef.Registry) (*layout.Plan, error) {
	if p.validate {
		check := validator.ValidateNetwork
		if p.strict {
			check = validator.ValidateNetworkStrict
		}
		if err := check(reg, p.logger); err != nil {
			return nil, err
		}
	}

	plan, err := layout.Create(reg)
	if err != nil {
		return nil, err
	}
	p.logger.Info("layout planned",
		"layers", reg.Len(),
		"hubs", len(plan.Hubs),
		"parameters", plan.ParamCount,
		"fingerprint", plan.Fingerprint,
	)
	return plan, nil
}

// Plan is a convenience wrapper for one-shot planning with defaults.
func Plan(reg *netdef.Registry, opts ...Option) (*layout.Plan, error) {
	return New(opts...).Plan(reg)
}
