package model

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/policy"
)

// Options configures the Builder.
type Options struct {
	// Rules decides the security window per version. Defaults to
	// policy.DefaultRules.
	Rules *policy.Rules
	// Logger receives per-record debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

func defaultOptions() Options {
	return Options{
		Rules:  policy.DefaultRules(),
		Logger: zap.NewNop(),
	}
}
