// Package mealstatus derives the reservation status of a meal on a given day
// and maps each status to its presentation and to the action the UI may
// offer. Classification is total: every (meal, menu) pair yields exactly one
// of the six statuses.
package mealstatus

import (
	"time"

	"github.com/ifcampus/meal-gateway/internal/dateutil"
	"github.com/ifcampus/meal-gateway/internal/models"
)

// Status is the derived reservation state of a meal on a specific day.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusClosed      Status = "closed"
	StatusBlocked     Status = "blocked"
	StatusCanceled    Status = "canceled"
	StatusReserved    Status = "reserved"
	StatusUnavailable Status = "unavailable"
)

// Classify derives the status for a meal/menu pair at the given instant.
// Rules apply in precedence order; the first match wins. Reservation and
// cancellation overrides come before the time-window checks because they
// reflect committed state that must stay visible regardless of clock drift.
func Classify(meal *models.Meal, menu *models.MenuDay, now time.Time) Status {
	if meal == nil || menu == nil {
		return StatusUnavailable
	}
	if menu.Permission == 0 {
		return StatusBlocked
	}
	if menu.CanceledByStudent {
		return StatusCanceled
	}
	if menu.Agendado {
		return StatusReserved
	}

	hoursUntilStart := dateutil.HoursUntil(now, dateutil.CombineDateTime(menu.Date, meal.TimeStart))
	hoursUntilEnd := dateutil.HoursUntil(now, dateutil.CombineDateTime(menu.Date, meal.TimeEnd))

	if hoursUntilStart < 0 || hoursUntilEnd < 0 {
		return StatusClosed
	}
	if hoursUntilStart > meal.QtdTimeReservationStart {
		return StatusUnavailable // too early to reserve
	}
	if hoursUntilStart < meal.QtdTimeReservationEnd {
		return StatusUnavailable // past the reservation cutoff
	}
	return StatusAvailable
}

// Action is what the UI may offer for a given status.
type Action string

const (
	ActionReserve Action = "reserve"
	ActionCancel  Action = "cancel"
	ActionNone    Action = "none"
)

// ActionFor maps a status to the action the UI should offer.
func ActionFor(s Status) Action {
	switch s {
	case StatusAvailable:
		return ActionReserve
	case StatusReserved:
		return ActionCancel
	default:
		return ActionNone
	}
}
