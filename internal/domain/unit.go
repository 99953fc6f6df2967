package domain

import "time"

// OrgUnit represents an organizational unit that owns tickets and
// workers. Code is the short routing handle (e.g. "IT", "FACILITIES").
type OrgUnit struct {
	ID        string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
