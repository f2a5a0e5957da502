package bearer

import "time"

type Options struct {
	Issuers      []string
	RoleStrategy RoleStrategy
	Now          func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		RoleStrategy: RoleStrategyRealm,
		Now:          time.Now,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithIssuers(issuers ...string) OptionFunc {
	return func(opts *Options) {
		opts.Issuers = issuers
	}
}

func WithRoleStrategy(strategy RoleStrategy) OptionFunc {
	return func(opts *Options) {
		opts.RoleStrategy = strategy
	}
}

func WithNow(now func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Now = now
	}
}
