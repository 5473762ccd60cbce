package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Incident categories, worst last.
const (
	CategoryNormal       = "normal"
	CategoryLessCritical = "less-critical"
	CategoryCritical     = "critical"
)

// ValidIncidentCategory reports whether c is one of the three incident
// categories.
func ValidIncidentCategory(c string) bool {
	return c == CategoryNormal || c == CategoryLessCritical || c == CategoryCritical
}

// Update is an incident report posted for an upazila. Listings are served
// newest-edit first (updated_at descending).
type Update struct {
	bun.BaseModel `bun:"table:updates,alias:upd"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Location     string    `bun:"location,notnull" json:"location"`
	Incident     string    `bun:"incident,notnull" json:"incident"`
	Category     string    `bun:"category,notnull" json:"category"`
	Requirements string    `bun:"requirements,notnull" json:"requirements"`
	Action       string    `bun:"action,notnull" json:"action"`
	DistrictID   string    `bun:"district_id,notnull" json:"district_id"`
	UpazilaID    string    `bun:"upazila_id,notnull" json:"upazila_id"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
