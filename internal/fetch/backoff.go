package fetch

import "time"

// Policy describes the retry budget for a single details request. The
// decision is a pure function of the attempt number so it can be tested
// without any surrounding control flow.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultPolicy matches the storefront's tolerance: three attempts with a
// doubling delay starting at two seconds.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Multiplier:  2.0,
	}
}

// Delay returns the backoff to apply after a failed attempt (1-based) and
// whether another attempt is allowed. No delay is ever applied after the
// final attempt.
func (p Policy) Delay(attempt int) (time.Duration, bool) {
	if attempt < 1 || attempt >= p.MaxAttempts {
		return 0, false
	}

	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return delay, true
}
