package domain

import "time"

// Worker models a person who can be assigned tickets. Directory data is
// owned by the external directory service; this core only reads it.
// Specialty is informational and plays no part in assignment decisions.
type Worker struct {
	ID        string
	Name      string
	Email     string
	UnitID    *string
	Specialty string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InUnit reports whether the worker belongs to the given unit.
func (w *Worker) InUnit(unitID string) bool {
	return w.UnitID != nil && *w.UnitID == unitID
}
