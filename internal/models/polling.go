package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Polling-center risk categories.
const (
	PollingNormal        = "normal"
	PollingLessDangerous = "less-dangerous"
	PollingDangerous     = "dangerous"
)

// ValidPollingCategory reports whether c is one of the three polling-center
// categories.
func ValidPollingCategory(c string) bool {
	return c == PollingNormal || c == PollingLessDangerous || c == PollingDangerous
}

// PollingCenter describes one polling center of an upazila. Serial numbers
// are unique within an upazila; the service enforces that, not the schema.
type PollingCenter struct {
	bun.BaseModel `bun:"table:polling_centers,alias:pc"`

	ID               uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Serial           string    `bun:"serial,notnull" json:"serial"`
	Name             string    `bun:"name,notnull" json:"name"`
	Union            string    `bun:"union_name,notnull" json:"union"`
	Location         string    `bun:"location,notnull" json:"location"`
	Map              string    `bun:"map" json:"map"`
	MaleVoters       int       `bun:"male_voters,notnull" json:"male_voters"`
	FemaleVoters     int       `bun:"female_voters,notnull" json:"female_voters"`
	Minority         int       `bun:"minority,notnull" json:"minority"`
	PresidingOfficer string    `bun:"presiding_officer,notnull" json:"presiding_officer"`
	ContactDetails   string    `bun:"contact_details,notnull" json:"contact_details"`
	Category         string    `bun:"category,notnull" json:"category"`
	DistrictID       string    `bun:"district_id,notnull" json:"district_id"`
	UpazilaID        string    `bun:"upazila_id,notnull" json:"upazila_id"`
	CreatedAt        time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt        time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
