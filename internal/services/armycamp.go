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

// ArmyCampService manages security-camp deployments, scoped to the district
// like candidates.
type ArmyCampService struct {
	db   *bun.DB
	inv  *cache.Invalidator
	logr *logger.Logger
}

func NewArmyCampService(db *bun.DB, inv *cache.Invalidator, logr *logger.Logger) *ArmyCampService {
	return &ArmyCampService{db: db, inv: inv, logr: logr}
}

type CreateArmyCampRequest struct {
	Unit          string `json:"unit"`
	Location      string `json:"location"`
	Map           string `json:"map"`
	Manpower      int    `json:"manpower"`
	ContactNumber string `json:"contact_number"`
	DistrictID    string `json:"district_id"`
	UpazilaID     string `json:"upazila_id"`
}

type UpdateArmyCampRequest struct {
	Unit          *string `json:"unit"`
	Location      *string `json:"location"`
	Map           *string `json:"map"`
	Manpower      *int    `json:"manpower"`
	ContactNumber *string `json:"contact_number"`
}

func (s *ArmyCampService) ListByDistrict(ctx context.Context, districtID string) ([]model.ArmyCamp, error) {
	camps := make([]model.ArmyCamp, 0)
	err := s.db.NewSelect().Model(&camps).
		Where("district_id = ?", districtID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return camps, nil
}

func (s *ArmyCampService) Create(ctx context.Context, id authz.Identity, req CreateArmyCampRequest) (*model.ArmyCamp, error) {
	if err := validateArmyCamp(req); err != nil {
		return nil, err
	}
	if err := authorize(s.logr, id, req.DistrictID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	camp := model.ArmyCamp{
		ID:            uuid.New(),
		Unit:          req.Unit,
		Location:      req.Location,
		Map:           req.Map,
		Manpower:      req.Manpower,
		ContactNumber: req.ContactNumber,
		DistrictID:    req.DistrictID,
		UpazilaID:     req.UpazilaID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.db.NewInsert().Model(&camp).Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(armyCampsPath(camp.DistrictID))
	s.logr.Info("army camp created", zap.String("id", camp.ID.String()), zap.String("district", camp.DistrictID))
	return &camp, nil
}

func (s *ArmyCampService) Update(ctx context.Context, id authz.Identity, campID string, req UpdateArmyCampRequest) (*model.ArmyCamp, error) {
	cid, err := uuid.Parse(campID)
	if err != nil {
		return nil, ErrNotFound
	}

	var camp model.ArmyCamp
	if err := s.db.NewSelect().Model(&camp).Where("id = ?", cid).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorize(s.logr, id, camp.DistrictID); err != nil {
		return nil, err
	}

	if req.Manpower != nil && *req.Manpower < 0 {
		return nil, validationErr("manpower must be non-negative")
	}

	if req.Unit != nil {
		camp.Unit = *req.Unit
	}
	if req.Location != nil {
		camp.Location = *req.Location
	}
	if req.Map != nil {
		camp.Map = *req.Map
	}
	if req.Manpower != nil {
		camp.Manpower = *req.Manpower
	}
	if req.ContactNumber != nil {
		camp.ContactNumber = *req.ContactNumber
	}
	camp.UpdatedAt = time.Now().UTC()

	if _, err := s.db.NewUpdate().Model(&camp).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(armyCampsPath(camp.DistrictID))
	return &camp, nil
}

// Delete is a silent success when the id is already gone.
func (s *ArmyCampService) Delete(ctx context.Context, id authz.Identity, campID, districtID string) error {
	if err := authorize(s.logr, id, districtID); err != nil {
		return err
	}

	cid, err := uuid.Parse(campID)
	if err != nil {
		return nil
	}
	if _, err := s.db.NewDelete().Model((*model.ArmyCamp)(nil)).Where("id = ?", cid).Exec(ctx); err != nil {
		return err
	}

	s.inv.Invalidate(armyCampsPath(districtID))
	return nil
}

func validateArmyCamp(req CreateArmyCampRequest) error {
	for field, v := range map[string]string{
		"unit":           req.Unit,
		"location":       req.Location,
		"contact_number": req.ContactNumber,
	} {
		if strings.TrimSpace(v) == "" {
			return validationErr("%s is required", field)
		}
	}
	if req.Manpower < 0 {
		return validationErr("manpower must be non-negative")
	}
	if !geo.IsDistrict(req.DistrictID) {
		return validationErr("unknown district %q", req.DistrictID)
	}
	if !geo.IsUpazilaOf(req.DistrictID, req.UpazilaID) {
		return validationErr("upazila %q is not in district %q", req.UpazilaID, req.DistrictID)
	}
	return nil
}

func armyCampsPath(districtID string) string {
	return fmt.Sprintf("/district/%s/army-camps", districtID)
}
