// Package reader delays dependencies: the use case is a Reader that only
// runs once an environment is supplied.
package reader

import "context"

// Reader is a computation that needs an environment E to produce a T.
type Reader[E, T any] func(ctx context.Context, env E) (T, error)

// Run supplies env to r.
func Run[E, T any](ctx context.Context, env E, r Reader[E, T]) (T, error) {
	return r(ctx, env)
}

// Of lifts a plain value.
func Of[E, T any](v T) Reader[E, T] {
	return func(context.Context, E) (T, error) {
		return v, nil
	}
}

// Fail is a Reader that always fails with err.
func Fail[E, T any](err error) Reader[E, T] {
	return func(context.Context, E) (T, error) {
		var zero T
		return zero, err
	}
}

// Ask returns the environment itself.
func Ask[E any]() Reader[E, E] {
	return func(_ context.Context, env E) (E, error) {
		return env, nil
	}
}

// Map transforms the result of r.
func Map[E, A, B any](r Reader[E, A], f func(A) B) Reader[E, B] {
	return func(ctx context.Context, env E) (B, error) {
		a, err := r(ctx, env)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// FlatMap runs r, then the Reader f builds from its result, in the same
// environment. An error from r skips f.
func FlatMap[E, A, B any](r Reader[E, A], f func(A) Reader[E, B]) Reader[E, B] {
	return func(ctx context.Context, env E) (B, error) {
		a, err := r(ctx, env)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)(ctx, env)
	}
}

// Then runs r and discards its result before next.
func Then[E, A, B any](r Reader[E, A], next Reader[E, B]) Reader[E, B] {
	return FlatMap(r, func(A) Reader[E, B] { return next })
}
