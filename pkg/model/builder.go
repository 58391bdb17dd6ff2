package model

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/internal/model"
	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/policy"
)

// Builder converts a validated document into an enriched Dataset.
type Builder interface {
	Build(doc dataset.Document, today time.Time) (Dataset, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	rules  *policy.Rules
	logger *zap.Logger
}

// WithRules overrides the security window rule table.
func WithRules(rules *policy.Rules) BuilderOption {
	return func(opts *builderOptions) {
		opts.rules = rules
	}
}

// WithLogger routes per-record debug output to logger.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return model.New(model.Options{
		Rules:  cfg.rules,
		Logger: cfg.logger,
	})
}
