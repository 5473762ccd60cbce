package services

import (
	"context"
	"testing"

	model "election-bknd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPollingCenter(serial string) CreatePollingCenterRequest {
	return CreatePollingCenterRequest{
		Serial:           serial,
		Name:             "Kaunia High School",
		Union:            "Haragachh",
		Location:         "Kaunia, Rangpur",
		Map:              "https://maps.example.com/embed/kaunia-hs",
		MaleVoters:       1800,
		FemaleVoters:     1750,
		Minority:         120,
		PresidingOfficer: "Md. Rahim Uddin",
		ContactDetails:   "01730000000",
		Category:         model.PollingNormal,
		DistrictID:       "rangpur",
		UpazilaID:        "kaunia",
	}
}

func TestPollingCreateAndListOrderedBySerial(t *testing.T) {
	svc := NewPollingService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()
	admin := asScopeAdmin("kaunia")

	for _, serial := range []string{"03", "01", "02"} {
		_, err := svc.Create(ctx, admin, validPollingCenter(serial))
		require.NoError(t, err)
	}

	got, err := svc.ListByUpazila(ctx, "kaunia")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "01", got[0].Serial)
	assert.Equal(t, "02", got[1].Serial)
	assert.Equal(t, "03", got[2].Serial)
}

func TestPollingSerialUniquePerUpazila(t *testing.T) {
	svc := NewPollingService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()
	su := asSuperadmin()

	_, err := svc.Create(ctx, su, validPollingCenter("01"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, su, validPollingCenter("01"))
	assert.ErrorIs(t, err, ErrValidation)

	// Same serial in another upazila is fine.
	other := validPollingCenter("01")
	other.UpazilaID = "mithapukur"
	_, err = svc.Create(ctx, su, other)
	require.NoError(t, err)
}

func TestPollingUpdateSerialCollision(t *testing.T) {
	svc := NewPollingService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()
	su := asSuperadmin()

	_, err := svc.Create(ctx, su, validPollingCenter("01"))
	require.NoError(t, err)
	pc, err := svc.Create(ctx, su, validPollingCenter("02"))
	require.NoError(t, err)

	taken := "01"
	_, err = svc.Update(ctx, su, pc.ID.String(), UpdatePollingCenterRequest{Serial: &taken})
	assert.ErrorIs(t, err, ErrValidation)

	// Re-submitting its own serial is not a collision.
	same := "02"
	got, err := svc.Update(ctx, su, pc.ID.String(), UpdatePollingCenterRequest{Serial: &same})
	require.NoError(t, err)
	assert.Equal(t, "02", got.Serial)

	free := "05"
	got, err = svc.Update(ctx, su, pc.ID.String(), UpdatePollingCenterRequest{Serial: &free})
	require.NoError(t, err)
	assert.Equal(t, "05", got.Serial)
}

// Polling mutations are authorized against the upazila; neither the parent
// district's admin nor a sibling upazila's admin may touch them.
func TestPollingScopeIsUpazila(t *testing.T) {
	svc := NewPollingService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, asScopeAdmin("rangpur"), validPollingCenter("01"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Create(ctx, asScopeAdmin("mithapukur"), validPollingCenter("01"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	pc, err := svc.Create(ctx, asScopeAdmin("kaunia"), validPollingCenter("01"))
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, asScopeAdmin("rangpur"), pc.ID.String(), UpdatePollingCenterRequest{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.Delete(ctx, asScopeAdmin("rangpur"), pc.ID.String(), "rangpur", "kaunia")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Delete(ctx, asScopeAdmin("kaunia"), pc.ID.String(), "rangpur", "kaunia"))
}

func TestPollingValidation(t *testing.T) {
	svc := NewPollingService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()
	su := asSuperadmin()

	req := validPollingCenter("01")
	req.MaleVoters = -1
	_, err := svc.Create(ctx, su, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validPollingCenter("01")
	req.Category = "red"
	_, err = svc.Create(ctx, su, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validPollingCenter("01")
	req.UpazilaID = "birampur" // not in rangpur
	_, err = svc.Create(ctx, su, req)
	assert.ErrorIs(t, err, ErrValidation)
}
