package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// CheckFunc adapts a plain function to HealthChecker.
type CheckFunc func(ctx context.Context) bool

func (f CheckFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

func NewOkHealthChecker() HealthChecker {
	return CheckFunc(func(context.Context) bool { return true })
}
