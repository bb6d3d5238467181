package auth

import "time"

type options struct {
	now    func() time.Time
	leeway time.Duration
}

// Option configures an Issuer or a Verifier.
type Option func(*options)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLeeway sets the clock skew tolerated when checking expiry. Only the
// Verifier uses it; the default is zero.
func WithLeeway(d time.Duration) Option {
	return func(o *options) {
		o.leeway = d
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
