// Package production models build orders, material inventory and line
// scheduling for catalog systems.
package production

import (
	"fmt"
	"time"

	"aeroforge/internal/catalog"
)

type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
)

type Order struct {
	ID       string    `json:"id" yaml:"id"`
	SystemID string    `json:"system_id" yaml:"system_id"`
	Quantity int       `json:"quantity" yaml:"quantity"`
	Priority Priority  `json:"priority" yaml:"priority"`
	Created  time.Time `json:"created" yaml:"created"`
}

// NewOrder validates and creates an order against the catalog.
func NewOrder(cat *catalog.Catalog, id, systemID string, quantity int, priority Priority, now time.Time) (*Order, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("order %s: quantity must be at least 1, got %d", id, quantity)
	}
	switch priority {
	case PriorityStandard, PriorityUrgent, PriorityCritical:
	default:
		return nil, fmt.Errorf("order %s: unknown priority %q", id, priority)
	}
	if _, err := cat.System(systemID); err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}
	return &Order{
		ID:       id,
		SystemID: systemID,
		Quantity: quantity,
		Priority: priority,
		Created:  now.UTC(),
	}, nil
}

// Base build duration per unit, in days, by system class.
var baseDaysPerUnit = map[string]float64{
	catalog.ClassBoostGlide: 30,
	catalog.ClassBallistic:  45,
	catalog.ClassCruise:     20,
}

var priorityFactor = map[Priority]float64{
	PriorityStandard: 1.0,
	PriorityUrgent:   0.7,
	PriorityCritical: 0.5,
}

type Estimate struct {
	Days       float64   `json:"days" yaml:"days"`
	Start      time.Time `json:"start" yaml:"start"`
	Completion time.Time `json:"completion" yaml:"completion"`
}

// EstimateCompletion projects the order duration from the system class,
// quantity and priority.
func (o *Order) EstimateCompletion(cat *catalog.Catalog) (*Estimate, error) {
	sys, err := cat.System(o.SystemID)
	if err != nil {
		return nil, err
	}
	base, ok := baseDaysPerUnit[sys.Class]
	if !ok {
		return nil, fmt.Errorf("order %s: no build duration for class %q", o.ID, sys.Class)
	}

	days := base * float64(o.Quantity) * priorityFactor[o.Priority]
	return &Estimate{
		Days:       days,
		Start:      o.Created,
		Completion: o.Created.Add(time.Duration(days * 24 * float64(time.Hour))),
	}, nil
}
