package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DistrictMap is the embedded map for a district. The unique constraint on
// district_id makes the upsert safe under concurrent callers.
type DistrictMap struct {
	bun.BaseModel `bun:"table:district_maps,alias:dm"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	DistrictID  string    `bun:"district_id,notnull,unique" json:"district_id"`
	MapURL      string    `bun:"map_url,notnull" json:"map_url"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// UpazilaMap is the embedded map for an upazila, unique per
// (district_id, upazila_id) pair.
type UpazilaMap struct {
	bun.BaseModel `bun:"table:upazila_maps,alias:um"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	DistrictID  string    `bun:"district_id,notnull,unique:upazila_maps_scope" json:"district_id"`
	UpazilaID   string    `bun:"upazila_id,notnull,unique:upazila_maps_scope" json:"upazila_id"`
	MapURL      string    `bun:"map_url,notnull" json:"map_url"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// MainMapID is the fixed primary key of the singleton division map row.
const MainMapID = 1

// MainMap is the single division-wide map shown on the landing page.
type MainMap struct {
	bun.BaseModel `bun:"table:main_map,alias:mm"`

	ID          int64     `bun:"id,pk" json:"id"`
	MapURL      string    `bun:"map_url,notnull" json:"map_url"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
