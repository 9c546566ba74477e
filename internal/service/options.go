package service

import "time"

// Option customizes a service
type Option func(*options)

type options struct {
	now func() time.Time
	loc *time.Location
}

func defaultOptions() options {
	return options{now: time.Now, loc: time.UTC}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the zone in which calendar dates are evaluated
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}
