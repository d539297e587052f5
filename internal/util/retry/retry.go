package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy controls how often and how patiently Do retries.
type Policy struct {
	// Attempts is the total number of tries, the first one included.
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy returns the policy Do uses when no option changes it.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:     4,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	}
}

// Option adjusts a Policy.
type Option func(*Policy)

// WithAttempts sets the total number of tries. Values below one mean one.
func WithAttempts(n int) Option {
	return func(p *Policy) {
		p.Attempts = max(n, 1)
	}
}

// WithDelays sets the first delay and the ceiling delays grow to.
func WithDelays(initial, ceiling time.Duration) Option {
	return func(p *Policy) {
		p.InitialDelay = initial
		p.MaxDelay = max(ceiling, initial)
	}
}

// Do runs op until it succeeds. The error of the last attempt is returned
// wrapped with the attempt count.
func Do(ctx context.Context, op func(context.Context) error, opts ...Option) error {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}

	delay := p.InitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if IsPermanent(err) {
			return err
		}
		if attempt >= p.Attempts {
			return fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("canceled after %d attempts: %w", attempt, errors.Join(ctx.Err(), err))
		case <-timer.C:
		}
		delay = min(time.Duration(float64(delay)*p.Multiplier), p.MaxDelay)
	}
}

type permanent struct{ error }

func (e permanent) Unwrap() error { return e.error }

// Permanent marks err as not worth retrying. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err}
}

// IsPermanent returns true if err is, or wraps, an error marked with Permanent.
func IsPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p)
}
