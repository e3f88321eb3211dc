package sync

import "time"

// RetryDelay returns how long to wait before the next reconnect attempt,
// given how many retries have already happened: the first retry is immediate,
// then the delay steps up to a fixed ceiling. The schedule is a pure function
// so the connection loop and its tests share one source of truth.
func RetryDelay(previousRetries int) time.Duration {
	switch {
	case previousRetries <= 0:
		return 0
	case previousRetries == 1:
		return 2 * time.Second
	case previousRetries == 2:
		return 10 * time.Second
	default:
		return 30 * time.Second
	}
}
