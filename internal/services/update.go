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

// UpdateService manages incident reports. Listings come back newest-edit
// first so the most recently touched report leads the page.
type UpdateService struct {
	db   *bun.DB
	inv  *cache.Invalidator
	logr *logger.Logger
}

func NewUpdateService(db *bun.DB, inv *cache.Invalidator, logr *logger.Logger) *UpdateService {
	return &UpdateService{db: db, inv: inv, logr: logr}
}

type CreateUpdateRequest struct {
	Location     string `json:"location"`
	Incident     string `json:"incident"`
	Category     string `json:"category"`
	Requirements string `json:"requirements"`
	Action       string `json:"action"`
	DistrictID   string `json:"district_id"`
	UpazilaID    string `json:"upazila_id"`
}

type UpdateUpdateRequest struct {
	Location     *string `json:"location"`
	Incident     *string `json:"incident"`
	Category     *string `json:"category"`
	Requirements *string `json:"requirements"`
	Action       *string `json:"action"`
}

// ListByDistrict returns incident reports ordered by updated_at descending,
// optionally narrowed to a set of categories.
func (s *UpdateService) ListByDistrict(ctx context.Context, districtID string, categories []string) ([]model.Update, error) {
	updates := make([]model.Update, 0)
	q := s.db.NewSelect().Model(&updates).
		Where("district_id = ?", districtID)
	if len(categories) > 0 {
		q = q.Where("category IN (?)", bun.In(categories))
	}
	err := q.Order("updated_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// CountCritical counts the district's reports in the critical category,
// feeding the warning banner on district pages.
func (s *UpdateService) CountCritical(ctx context.Context, districtID string) (int, error) {
	return s.db.NewSelect().Model((*model.Update)(nil)).
		Where("district_id = ? AND category = ?", districtID, model.CategoryCritical).
		Count(ctx)
}

func (s *UpdateService) Create(ctx context.Context, id authz.Identity, req CreateUpdateRequest) (*model.Update, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}
	if err := authorize(s.logr, id, req.DistrictID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Requirements) == "" {
		req.Requirements = "None"
	}

	now := time.Now().UTC()
	u := model.Update{
		ID:           uuid.New(),
		Location:     req.Location,
		Incident:     req.Incident,
		Category:     req.Category,
		Requirements: req.Requirements,
		Action:       req.Action,
		DistrictID:   req.DistrictID,
		UpazilaID:    req.UpazilaID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.db.NewInsert().Model(&u).Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(updatesPath(u.DistrictID))
	s.logr.Info("incident update created",
		zap.String("id", u.ID.String()),
		zap.String("district", u.DistrictID),
		zap.String("category", u.Category))
	return &u, nil
}

func (s *UpdateService) Update(ctx context.Context, id authz.Identity, updateID string, req UpdateUpdateRequest) (*model.Update, error) {
	uid, err := uuid.Parse(updateID)
	if err != nil {
		return nil, ErrNotFound
	}

	var u model.Update
	if err := s.db.NewSelect().Model(&u).Where("id = ?", uid).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorize(s.logr, id, u.DistrictID); err != nil {
		return nil, err
	}

	if req.Category != nil && !model.ValidIncidentCategory(*req.Category) {
		return nil, validationErr("unknown category %q", *req.Category)
	}

	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Incident != nil {
		u.Incident = *req.Incident
	}
	if req.Category != nil {
		u.Category = *req.Category
	}
	if req.Requirements != nil {
		u.Requirements = *req.Requirements
	}
	if req.Action != nil {
		u.Action = *req.Action
	}
	u.UpdatedAt = time.Now().UTC()

	if _, err := s.db.NewUpdate().Model(&u).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(updatesPath(u.DistrictID))
	return &u, nil
}

// Delete is a silent success when the id is already gone.
func (s *UpdateService) Delete(ctx context.Context, id authz.Identity, updateID, districtID string) error {
	if err := authorize(s.logr, id, districtID); err != nil {
		return err
	}

	uid, err := uuid.Parse(updateID)
	if err != nil {
		return nil
	}
	if _, err := s.db.NewDelete().Model((*model.Update)(nil)).Where("id = ?", uid).Exec(ctx); err != nil {
		return err
	}

	s.inv.Invalidate(updatesPath(districtID))
	return nil
}

func validateUpdate(req CreateUpdateRequest) error {
	for field, v := range map[string]string{
		"location": req.Location,
		"incident": req.Incident,
		"action":   req.Action,
	} {
		if strings.TrimSpace(v) == "" {
			return validationErr("%s is required", field)
		}
	}
	if !model.ValidIncidentCategory(req.Category) {
		return validationErr("unknown category %q", req.Category)
	}
	if !geo.IsDistrict(req.DistrictID) {
		return validationErr("unknown district %q", req.DistrictID)
	}
	if !geo.IsUpazilaOf(req.DistrictID, req.UpazilaID) {
		return validationErr("upazila %q is not in district %q", req.UpazilaID, req.DistrictID)
	}
	return nil
}

func updatesPath(districtID string) string {
	return fmt.Sprintf("/district/%s/updates", districtID)
}
