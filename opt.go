// Package optrun accumulates a filter and an action into a configuration
// value and drives them over a fixed range of integers.
package optrun

import "fmt"

// The half-open range of integers that Run walks through.
const (
	RangeStart = 0
	RangeEnd   = 10
)

// Filter decides whether an integer is handed to the action.
// It may capture and mutate state of its own.
type Filter func(i int) bool

// Action is the side effect applied to every integer accepted by the filter.
type Action func(i int)

// Opt holds at most one filter and one action. Every With* method returns a
// modified copy and leaves the receiver untouched.
type Opt struct {
	filter Filter
	action Action
}

// New returns a configuration without a filter and with the default action.
func New() Opt {
	return Opt{}
}

// WithFilter returns a copy of o that uses f as its filter.
// A previously installed filter is replaced.
func (o Opt) WithFilter(f Filter) Opt {
	o.filter = f
	return o
}

// WithAction returns a copy of o that uses a as its action.
// A previously installed action is replaced.
func (o Opt) WithAction(a Action) Opt {
	o.action = a
	return o
}

// Filter returns the installed filter or nil.
func (o Opt) Filter() Filter {
	return o.filter
}

// Action returns the installed action or nil when Print will be used.
func (o Opt) Action() Action {
	return o.action
}

// Run walks RangeStart..RangeEnd in ascending order and applies the action to
// every integer the filter accepts. Without a filter nothing is processed.
// Panics raised by the filter or the action are not recovered.
func (o Opt) Run() {
	if o.filter == nil {
		return
	}

	action := o.action
	if action == nil {
		action = Print
	}

	for i := RangeStart; i < RangeEnd; i++ {
		if o.filter(i) {
			action(i)
		}
	}
}

// Print is the default action, it writes i in decimal followed by a newline to stdout.
func Print(i int) {
	fmt.Println(i)
}
