// Package navigator implements the day cursor used when browsing menus: one
// mutable date, stepped a day at a time, reporting how far it drifted from
// today. The browsing window cap (±N days) is a UI policy enforced by the
// caller, not here.
package navigator

import "github.com/ifcampus/meal-gateway/internal/dateutil"

// Navigator holds the day currently being browsed. The zero cursor is today;
// it is never persisted, so a new view always starts over.
type Navigator struct {
	cursor string
	today  func() string
}

// New returns a navigator positioned on today.
func New() *Navigator {
	return &Navigator{cursor: dateutil.Today(), today: dateutil.Today}
}

// At returns a navigator positioned on the given ISO date, or on today when
// the date is empty.
func At(isoDate string) *Navigator {
	n := New()
	if isoDate != "" {
		n.cursor = isoDate
	}
	return n
}

// Current returns the cursor date in ISO form.
func (n *Navigator) Current() string {
	return n.cursor
}

// Next advances the cursor one day and returns it.
func (n *Navigator) Next() string {
	n.cursor = dateutil.ShiftDay(n.cursor, 1)
	return n.cursor
}

// Previous moves the cursor one day back and returns it.
func (n *Navigator) Previous() string {
	n.cursor = dateutil.ShiftDay(n.cursor, -1)
	return n.cursor
}

// DisplayText renders the cursor for the slider header: the literal "hoje"
// when the cursor sits on today, the localized date otherwise.
func (n *Navigator) DisplayText() string {
	if n.cursor == n.today() {
		return "hoje"
	}
	return dateutil.ToLocal(n.cursor)
}

// DriftDays reports how many days the cursor drifted from today, signed:
// positive in the future, negative in the past.
func (n *Navigator) DriftDays() float64 {
	return dateutil.DaysBetween(n.today(), n.cursor)
}
