package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"election-bknd/internal/authz"
	"election-bknd/internal/cache"
	"election-bknd/internal/geo"
	"election-bknd/internal/logger"
	model "election-bknd/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// MapService manages the embedded maps: one per district, one per upazila
// and a single division-wide map. Upserts go through the store's unique
// constraint on the scope key, so two racing callers can never leave two
// rows behind.
type MapService struct {
	db   *bun.DB
	inv  *cache.Invalidator
	logr *logger.Logger
}

func NewMapService(db *bun.DB, inv *cache.Invalidator, logr *logger.Logger) *MapService {
	return &MapService{db: db, inv: inv, logr: logr}
}

type MapRequest struct {
	MapURL      string `json:"map_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func validateMapRequest(req MapRequest) error {
	if strings.TrimSpace(req.MapURL) == "" {
		return validationErr("map_url is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return validationErr("title is required")
	}
	return nil
}

// GetDistrictMap returns nil when no map has been set for the district.
func (s *MapService) GetDistrictMap(ctx context.Context, districtID string) (*model.DistrictMap, error) {
	var m model.DistrictMap
	err := s.db.NewSelect().Model(&m).Where("district_id = ?", districtID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// UpsertDistrictMap creates or replaces the district's map in one
// statement keyed on the unique district_id constraint.
func (s *MapService) UpsertDistrictMap(ctx context.Context, id authz.Identity, districtID string, req MapRequest) (*model.DistrictMap, error) {
	if !geo.IsDistrict(districtID) {
		return nil, validationErr("unknown district %q", districtID)
	}
	if err := validateMapRequest(req); err != nil {
		return nil, err
	}
	if err := authorize(s.logr, id, districtID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := model.DistrictMap{
		ID:          uuid.New(),
		DistrictID:  districtID,
		MapURL:      req.MapURL,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.NewInsert().Model(&m).
		On("CONFLICT (district_id) DO UPDATE").
		Set("map_url = EXCLUDED.map_url").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	s.inv.Invalidate(districtPath(districtID))
	s.logr.Info("district map upserted", zap.String("district", districtID))
	return s.GetDistrictMap(ctx, districtID)
}

// DeleteDistrictMap is a silent success when no map exists.
func (s *MapService) DeleteDistrictMap(ctx context.Context, id authz.Identity, districtID string) error {
	if err := authorize(s.logr, id, districtID); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*model.DistrictMap)(nil)).Where("district_id = ?", districtID).Exec(ctx); err != nil {
		return err
	}
	s.inv.Invalidate(districtPath(districtID))
	return nil
}

// GetUpazilaMap returns nil when no map has been set for the pair.
func (s *MapService) GetUpazilaMap(ctx context.Context, districtID, upazilaID string) (*model.UpazilaMap, error) {
	var m model.UpazilaMap
	err := s.db.NewSelect().Model(&m).
		Where("district_id = ? AND upazila_id = ?", districtID, upazilaID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *MapService) UpsertUpazilaMap(ctx context.Context, id authz.Identity, districtID, upazilaID string, req MapRequest) (*model.UpazilaMap, error) {
	if !geo.IsUpazilaOf(districtID, upazilaID) {
		return nil, validationErr("upazila %q is not in district %q", upazilaID, districtID)
	}
	if err := validateMapRequest(req); err != nil {
		return nil, err
	}
	if err := authorize(s.logr, id, upazilaID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := model.UpazilaMap{
		ID:          uuid.New(),
		DistrictID:  districtID,
		UpazilaID:   upazilaID,
		MapURL:      req.MapURL,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.NewInsert().Model(&m).
		On("CONFLICT (district_id, upazila_id) DO UPDATE").
		Set("map_url = EXCLUDED.map_url").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	s.inv.Invalidate(upazilaPath(districtID, upazilaID))
	s.logr.Info("upazila map upserted", zap.String("district", districtID), zap.String("upazila", upazilaID))
	return s.GetUpazilaMap(ctx, districtID, upazilaID)
}

// DeleteUpazilaMap authorizes against the upazila, the same scope its
// upsert uses.
func (s *MapService) DeleteUpazilaMap(ctx context.Context, id authz.Identity, districtID, upazilaID string) error {
	if err := authorize(s.logr, id, upazilaID); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*model.UpazilaMap)(nil)).
		Where("district_id = ? AND upazila_id = ?", districtID, upazilaID).
		Exec(ctx); err != nil {
		return err
	}
	s.inv.Invalidate(upazilaPath(districtID, upazilaID))
	return nil
}

// GetMainMap returns nil when the landing-page map has not been set.
func (s *MapService) GetMainMap(ctx context.Context) (*model.MainMap, error) {
	var m model.MainMap
	err := s.db.NewSelect().Model(&m).Where("id = ?", model.MainMapID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// UpsertMainMap is reserved for the superadmin; the singleton row has a
// fixed primary key so the upsert can never grow a second row.
func (s *MapService) UpsertMainMap(ctx context.Context, id authz.Identity, req MapRequest) (*model.MainMap, error) {
	if err := validateMapRequest(req); err != nil {
		return nil, err
	}
	if err := authorizeSuperadmin(s.logr, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := model.MainMap{
		ID:          model.MainMapID,
		MapURL:      req.MapURL,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.NewInsert().Model(&m).
		On("CONFLICT (id) DO UPDATE").
		Set("map_url = EXCLUDED.map_url").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	s.inv.Invalidate("/")
	s.logr.Info("main map upserted", zap.String("by", id.UserID))
	return s.GetMainMap(ctx)
}

// DeleteMainMap clears the landing-page map. Superadmin only.
func (s *MapService) DeleteMainMap(ctx context.Context, id authz.Identity) error {
	if err := authorizeSuperadmin(s.logr, id); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*model.MainMap)(nil)).Where("id = ?", model.MainMapID).Exec(ctx); err != nil {
		return err
	}
	s.inv.Invalidate("/")
	return nil
}

func districtPath(districtID string) string {
	return fmt.Sprintf("/district/%s", districtID)
}

func upazilaPath(districtID, upazilaID string) string {
	return fmt.Sprintf("/district/%s/%s", districtID, upazilaID)
}
