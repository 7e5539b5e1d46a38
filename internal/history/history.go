// Package history merges the four upstream ticket categories into the single
// reverse-chronological feed shown on the meal-history screen.
package history

import (
	"sort"

	"github.com/ifcampus/meal-gateway/internal/models"
)

// Tag is the display status attached to each feed entry. Values match the
// upstream vocabulary used by the mobile app.
type Tag string

const (
	TagToUse     Tag = "a-ser-utilizado"
	TagUsed      Tag = "utilizado"
	TagCanceled  Tag = "cancelado"
	TagJustified Tag = "justificado"
	TagNotUsed   Tag = "nao-utilizado"
)

// DefaultLimit caps the feed to the most recent entries.
const DefaultLimit = 10

// TaggedTicket is a ticket annotated with its display status.
type TaggedTicket struct {
	models.Ticket
	Status Tag `json:"status"`
}

// Aggregate tags each category, merges them and returns the feed sorted by
// menu date descending, truncated to limit entries (DefaultLimit when
// limit <= 0). Ties keep their relative order so the feed is deterministic.
// Entries from the not-used category split into justified / not-used based on
// the presence of an absence justification.
func Aggregate(toUse, used, canceled, notUsed []models.Ticket, limit int) []TaggedTicket {
	if limit <= 0 {
		limit = DefaultLimit
	}

	all := make([]TaggedTicket, 0, len(toUse)+len(used)+len(canceled)+len(notUsed))
	for _, t := range toUse {
		all = append(all, TaggedTicket{Ticket: t, Status: TagToUse})
	}
	for _, t := range used {
		all = append(all, TaggedTicket{Ticket: t, Status: TagUsed})
	}
	for _, t := range canceled {
		all = append(all, TaggedTicket{Ticket: t, Status: TagCanceled})
	}
	for _, t := range notUsed {
		all = append(all, TaggedTicket{Ticket: t, Status: notUsedTag(t)})
	}

	// ISO dates compare lexicographically in chronological order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Menu.Date > all[j].Menu.Date
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func notUsedTag(t models.Ticket) Tag {
	if t.AbsenceJustification != nil && *t.AbsenceJustification != "" {
		return TagJustified
	}
	return TagNotUsed
}
