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

// PollingService manages polling-center details. Unlike the district-scoped
// services, mutations here are authorized against the upazila.
type PollingService struct {
	db   *bun.DB
	inv  *cache.Invalidator
	logr *logger.Logger
}

func NewPollingService(db *bun.DB, inv *cache.Invalidator, logr *logger.Logger) *PollingService {
	return &PollingService{db: db, inv: inv, logr: logr}
}

type CreatePollingCenterRequest struct {
	Serial           string `json:"serial"`
	Name             string `json:"name"`
	Union            string `json:"union"`
	Location         string `json:"location"`
	Map              string `json:"map"`
	MaleVoters       int    `json:"male_voters"`
	FemaleVoters     int    `json:"female_voters"`
	Minority         int    `json:"minority"`
	PresidingOfficer string `json:"presiding_officer"`
	ContactDetails   string `json:"contact_details"`
	Category         string `json:"category"`
	DistrictID       string `json:"district_id"`
	UpazilaID        string `json:"upazila_id"`
}

type UpdatePollingCenterRequest struct {
	Serial           *string `json:"serial"`
	Name             *string `json:"name"`
	Union            *string `json:"union"`
	Location         *string `json:"location"`
	Map              *string `json:"map"`
	MaleVoters       *int    `json:"male_voters"`
	FemaleVoters     *int    `json:"female_voters"`
	Minority         *int    `json:"minority"`
	PresidingOfficer *string `json:"presiding_officer"`
	ContactDetails   *string `json:"contact_details"`
	Category         *string `json:"category"`
}

func (s *PollingService) ListByUpazila(ctx context.Context, upazilaID string) ([]model.PollingCenter, error) {
	centers := make([]model.PollingCenter, 0)
	err := s.db.NewSelect().Model(&centers).
		Where("upazila_id = ?", upazilaID).
		Order("serial ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return centers, nil
}

func (s *PollingService) Create(ctx context.Context, id authz.Identity, req CreatePollingCenterRequest) (*model.PollingCenter, error) {
	if err := validatePollingCenter(req); err != nil {
		return nil, err
	}
	if err := authorize(s.logr, id, req.UpazilaID); err != nil {
		return nil, err
	}

	// Serial uniqueness within an upazila is an application-level rule, the
	// schema does not carry it.
	taken, err := s.serialTaken(ctx, req.UpazilaID, req.Serial, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, validationErr("serial %q already in use in upazila %q", req.Serial, req.UpazilaID)
	}

	now := time.Now().UTC()
	pc := model.PollingCenter{
		ID:               uuid.New(),
		Serial:           req.Serial,
		Name:             req.Name,
		Union:            req.Union,
		Location:         req.Location,
		Map:              req.Map,
		MaleVoters:       req.MaleVoters,
		FemaleVoters:     req.FemaleVoters,
		Minority:         req.Minority,
		PresidingOfficer: req.PresidingOfficer,
		ContactDetails:   req.ContactDetails,
		Category:         req.Category,
		DistrictID:       req.DistrictID,
		UpazilaID:        req.UpazilaID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := s.db.NewInsert().Model(&pc).Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(pollingPath(pc.DistrictID, pc.UpazilaID))
	s.logr.Info("polling center created",
		zap.String("id", pc.ID.String()),
		zap.String("upazila", pc.UpazilaID),
		zap.String("serial", pc.Serial))
	return &pc, nil
}

func (s *PollingService) Update(ctx context.Context, id authz.Identity, centerID string, req UpdatePollingCenterRequest) (*model.PollingCenter, error) {
	pid, err := uuid.Parse(centerID)
	if err != nil {
		return nil, ErrNotFound
	}

	var pc model.PollingCenter
	if err := s.db.NewSelect().Model(&pc).Where("id = ?", pid).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorize(s.logr, id, pc.UpazilaID); err != nil {
		return nil, err
	}

	if req.Category != nil && !model.ValidPollingCategory(*req.Category) {
		return nil, validationErr("unknown category %q", *req.Category)
	}
	if req.Serial != nil && *req.Serial != pc.Serial {
		taken, err := s.serialTaken(ctx, pc.UpazilaID, *req.Serial, pc.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, validationErr("serial %q already in use in upazila %q", *req.Serial, pc.UpazilaID)
		}
		pc.Serial = *req.Serial
	}

	if req.Name != nil {
		pc.Name = *req.Name
	}
	if req.Union != nil {
		pc.Union = *req.Union
	}
	if req.Location != nil {
		pc.Location = *req.Location
	}
	if req.Map != nil {
		pc.Map = *req.Map
	}
	if req.MaleVoters != nil {
		pc.MaleVoters = *req.MaleVoters
	}
	if req.FemaleVoters != nil {
		pc.FemaleVoters = *req.FemaleVoters
	}
	if req.Minority != nil {
		pc.Minority = *req.Minority
	}
	if req.PresidingOfficer != nil {
		pc.PresidingOfficer = *req.PresidingOfficer
	}
	if req.ContactDetails != nil {
		pc.ContactDetails = *req.ContactDetails
	}
	if req.Category != nil {
		pc.Category = *req.Category
	}
	pc.UpdatedAt = time.Now().UTC()

	if _, err := s.db.NewUpdate().Model(&pc).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(pollingPath(pc.DistrictID, pc.UpazilaID))
	return &pc, nil
}

// Delete is a silent success when the id is already gone.
func (s *PollingService) Delete(ctx context.Context, id authz.Identity, centerID, districtID, upazilaID string) error {
	if err := authorize(s.logr, id, upazilaID); err != nil {
		return err
	}

	pid, err := uuid.Parse(centerID)
	if err != nil {
		return nil
	}
	if _, err := s.db.NewDelete().Model((*model.PollingCenter)(nil)).Where("id = ?", pid).Exec(ctx); err != nil {
		return err
	}

	s.inv.Invalidate(pollingPath(districtID, upazilaID))
	return nil
}

func (s *PollingService) serialTaken(ctx context.Context, upazilaID, serial string, exclude uuid.UUID) (bool, error) {
	q := s.db.NewSelect().Model((*model.PollingCenter)(nil)).
		Where("upazila_id = ? AND serial = ?", upazilaID, serial)
	if exclude != uuid.Nil {
		q = q.Where("id != ?", exclude)
	}
	return q.Exists(ctx)
}

func validatePollingCenter(req CreatePollingCenterRequest) error {
	for field, v := range map[string]string{
		"serial":            req.Serial,
		"name":              req.Name,
		"union":             req.Union,
		"location":          req.Location,
		"presiding_officer": req.PresidingOfficer,
		"contact_details":   req.ContactDetails,
	} {
		if strings.TrimSpace(v) == "" {
			return validationErr("%s is required", field)
		}
	}
	if req.MaleVoters < 0 || req.FemaleVoters < 0 || req.Minority < 0 {
		return validationErr("voter counts must be non-negative")
	}
	if !model.ValidPollingCategory(req.Category) {
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

func pollingPath(districtID, upazilaID string) string {
	return fmt.Sprintf("/district/%s/%s/polling", districtID, upazilaID)
}
