// Package options provides generic functional-option plumbing shared by the
// public packages of this module. Each public package declares a type alias
// for Option[T] specialized to its own configuration type and builds its
// With* constructors on New or Setter.
package options

// Option configures a value of type T. Options are applied in order; the
// first failing option aborts application.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// Setter wraps an infallible configuration function as an Option. Most
// options are plain field assignments and use this form.
func Setter[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply runs opts against target in order, returning the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
