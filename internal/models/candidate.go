package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Candidate is an election candidate standing in a constituency of a
// district. Scope keys are denormalized onto the row so listings and
// authorization never need a join.
type Candidate struct {
	bun.BaseModel `bun:"table:candidates,alias:c"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Party         string    `bun:"party,notnull" json:"party"`
	Address       string    `bun:"address,notnull" json:"address"`
	Constituency  string    `bun:"constituency" json:"constituency"`
	ContactNumber string    `bun:"contact_number,notnull" json:"contact_number"`
	DistrictID    string    `bun:"district_id,notnull" json:"district_id"`
	UpazilaID     string    `bun:"upazila_id,notnull" json:"upazila_id"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
