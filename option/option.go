// Package option provides generic functional options pattern utilities.
package option

// Option represents a functional option that configures a value of type T.
type Option[T any] func(*T)

// Apply runs every non-nil option against v in order, so later options win.
func Apply[T any](v *T, opts ...Option[T]) {
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
}
