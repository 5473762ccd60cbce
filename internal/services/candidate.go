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

// CandidateService manages candidate rosters. Mutations are scoped to the
// district: the guard compares the caller's role against the candidate's
// district identifier.
type CandidateService struct {
	db   *bun.DB
	inv  *cache.Invalidator
	logr *logger.Logger
}

func NewCandidateService(db *bun.DB, inv *cache.Invalidator, logr *logger.Logger) *CandidateService {
	return &CandidateService{db: db, inv: inv, logr: logr}
}

type CreateCandidateRequest struct {
	Name          string `json:"name"`
	Party         string `json:"party"`
	Address       string `json:"address"`
	Constituency  string `json:"constituency"`
	ContactNumber string `json:"contact_number"`
	DistrictID    string `json:"district_id"`
	UpazilaID     string `json:"upazila_id"`
}

type UpdateCandidateRequest struct {
	Name          *string `json:"name"`
	Party         *string `json:"party"`
	Address       *string `json:"address"`
	Constituency  *string `json:"constituency"`
	ContactNumber *string `json:"contact_number"`
}

// ListByDistrict is an unrestricted read. An empty district yields an empty
// slice, not an error.
func (s *CandidateService) ListByDistrict(ctx context.Context, districtID string) ([]model.Candidate, error) {
	candidates := make([]model.Candidate, 0)
	err := s.db.NewSelect().Model(&candidates).
		Where("district_id = ?", districtID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *CandidateService) Create(ctx context.Context, id authz.Identity, req CreateCandidateRequest) (*model.Candidate, error) {
	if err := validateCandidate(req); err != nil {
		return nil, err
	}
	if err := authorize(s.logr, id, req.DistrictID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := model.Candidate{
		ID:            uuid.New(),
		Name:          req.Name,
		Party:         req.Party,
		Address:       req.Address,
		Constituency:  req.Constituency,
		ContactNumber: req.ContactNumber,
		DistrictID:    req.DistrictID,
		UpazilaID:     req.UpazilaID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.db.NewInsert().Model(&c).Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(candidatesPath(c.DistrictID))
	s.logr.Info("candidate created", zap.String("id", c.ID.String()), zap.String("district", c.DistrictID))
	return &c, nil
}

// Update authorizes against the stored district, never the caller-supplied
// one, so an admin cannot relabel a record into a scope they own.
func (s *CandidateService) Update(ctx context.Context, id authz.Identity, candidateID string, req UpdateCandidateRequest) (*model.Candidate, error) {
	cid, err := uuid.Parse(candidateID)
	if err != nil {
		return nil, ErrNotFound
	}

	var c model.Candidate
	if err := s.db.NewSelect().Model(&c).Where("id = ?", cid).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorize(s.logr, id, c.DistrictID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Party != nil {
		c.Party = *req.Party
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Constituency != nil {
		c.Constituency = *req.Constituency
	}
	if req.ContactNumber != nil {
		c.ContactNumber = *req.ContactNumber
	}
	c.UpdatedAt = time.Now().UTC()

	if _, err := s.db.NewUpdate().Model(&c).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	s.inv.Invalidate(candidatesPath(c.DistrictID))
	return &c, nil
}

// Delete removes a candidate. Deleting an id that no longer exists is a
// silent success; the same policy holds in every resource service.
func (s *CandidateService) Delete(ctx context.Context, id authz.Identity, candidateID, districtID string) error {
	if err := authorize(s.logr, id, districtID); err != nil {
		return err
	}

	cid, err := uuid.Parse(candidateID)
	if err != nil {
		return nil
	}
	if _, err := s.db.NewDelete().Model((*model.Candidate)(nil)).Where("id = ?", cid).Exec(ctx); err != nil {
		return err
	}

	s.inv.Invalidate(candidatesPath(districtID))
	return nil
}

func validateCandidate(req CreateCandidateRequest) error {
	for field, v := range map[string]string{
		"name":           req.Name,
		"party":          req.Party,
		"address":        req.Address,
		"contact_number": req.ContactNumber,
	} {
		if strings.TrimSpace(v) == "" {
			return validationErr("%s is required", field)
		}
	}
	if !geo.IsDistrict(req.DistrictID) {
		return validationErr("unknown district %q", req.DistrictID)
	}
	if !geo.IsUpazilaOf(req.DistrictID, req.UpazilaID) {
		return validationErr("upazila %q is not in district %q", req.UpazilaID, req.DistrictID)
	}
	return nil
}

func candidatesPath(districtID string) string {
	return fmt.Sprintf("/district/%s/candidates", districtID)
}
