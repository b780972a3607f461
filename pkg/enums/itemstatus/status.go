package itemstatus

import (
	"strings"
)

// Status is the board vocabulary for a line item. The order service speaks
// a different one: it persists "completed" where the board says "done".
type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(s.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

// Wire returns the order service code for this status.
func (s Status) Wire() string {
	if s.Name == Statuses.Done.Name {
		return "completed"
	}
	return s.Name
}

type Enum struct {
	Pending Status
	Done    Status
}

var Statuses = Enum{
	Pending: Status{Name: "pending"},
	Done:    Status{Name: "done"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Done,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// FromWire maps an order service item status to the board vocabulary.
// Unknown codes map to pending so a new server status never hides an item.
func FromWire(code string) Status {
	if code == "completed" || code == Statuses.Done.Name {
		return Statuses.Done
	}
	return Statuses.Pending
}
