package ports

import "context"

// LoginThrottle limits brute-force credential guessing per username. A nil
// throttle disables limiting; throttle errors never block a login attempt.
type LoginThrottle interface {
	// TooManyAttempts reports whether username has exceeded the failure budget.
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt against username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
