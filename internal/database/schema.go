package database

import (
	"context"
	"fmt"

	"election-bknd/internal/models"

	"github.com/uptrace/bun"
)

// InitSchema creates the tables and the unique constraints the service
// relies on: users.email, district_maps.district_id and the
// (district_id, upazila_id) pair on upazila_maps. The map constraints are
// what keeps a concurrent upsert race from producing duplicate scope rows.
func InitSchema(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.User)(nil),
		(*models.RefreshToken)(nil),
		(*models.Candidate)(nil),
		(*models.ArmyCamp)(nil),
		(*models.Update)(nil),
		(*models.PollingCenter)(nil),
		(*models.DistrictMap)(nil),
		(*models.UpazilaMap)(nil),
		(*models.MainMap)(nil),
	}

	for _, table := range tables {
		if _, err := db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", table, err)
		}
	}

	indexes := []struct {
		name    string
		model   any
		columns []string
	}{
		{"idx_candidates_district", (*models.Candidate)(nil), []string{"district_id"}},
		{"idx_army_camps_district", (*models.ArmyCamp)(nil), []string{"district_id"}},
		{"idx_updates_district", (*models.Update)(nil), []string{"district_id"}},
		{"idx_polling_centers_upazila", (*models.PollingCenter)(nil), []string{"upazila_id"}},
		{"idx_refresh_tokens_user", (*models.RefreshToken)(nil), []string{"user_id"}},
	}

	for _, idx := range indexes {
		q := db.NewCreateIndex().Model(idx.model).Index(idx.name).IfNotExists()
		for _, col := range idx.columns {
			q = q.Column(col)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}
