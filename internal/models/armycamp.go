package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ArmyCamp is a security-camp deployment inside an upazila.
type ArmyCamp struct {
	bun.BaseModel `bun:"table:army_camps,alias:ac"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Unit          string    `bun:"unit,notnull" json:"unit"`
	Location      string    `bun:"location,notnull" json:"location"`
	Map           string    `bun:"map" json:"map"`
	Manpower      int       `bun:"manpower,notnull" json:"manpower"`
	ContactNumber string    `bun:"contact_number,notnull" json:"contact_number"`
	DistrictID    string    `bun:"district_id,notnull" json:"district_id"`
	UpazilaID     string    `bun:"upazila_id,notnull" json:"upazila_id"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
