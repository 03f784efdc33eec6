package service

// LoginThrottle bounds the rate of authentication attempts per client origin
// within a trailing window. Implementations are process-local and best
// effort: a brake on brute force, not a security boundary.
type LoginThrottle interface {
	// Check records an attempt for clientKey and returns nil, or returns
	// ErrThrottled without recording when the window budget is exhausted.
	Check(clientKey string) error
}
