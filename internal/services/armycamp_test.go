package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArmyCamp() CreateArmyCampRequest {
	return CreateArmyCampRequest{
		Unit:          "66 Infantry Division",
		Location:      "Rangpur Cantonment",
		Map:           "https://maps.example.com/embed/rangpur-cantonment",
		Manpower:      120,
		ContactNumber: "01720000000",
		DistrictID:    "rangpur",
		UpazilaID:     "rangpur-sadar",
	}
}

func TestArmyCampCreateAndList(t *testing.T) {
	svc := NewArmyCampService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()

	camp, err := svc.Create(ctx, asScopeAdmin("rangpur"), validArmyCamp())
	require.NoError(t, err)
	assert.Equal(t, 120, camp.Manpower)

	got, err := svc.ListByDistrict(ctx, "rangpur")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, camp.ID, got[0].ID)
}

func TestArmyCampManpowerValidation(t *testing.T) {
	svc := NewArmyCampService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()

	req := validArmyCamp()
	req.Manpower = -5
	_, err := svc.Create(ctx, asSuperadmin(), req)
	assert.ErrorIs(t, err, ErrValidation)

	camp, err := svc.Create(ctx, asSuperadmin(), validArmyCamp())
	require.NoError(t, err)

	bad := -1
	_, err = svc.Update(ctx, asSuperadmin(), camp.ID.String(), UpdateArmyCampRequest{Manpower: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	ok := 200
	got, err := svc.Update(ctx, asSuperadmin(), camp.ID.String(), UpdateArmyCampRequest{Manpower: &ok})
	require.NoError(t, err)
	assert.Equal(t, 200, got.Manpower)
}

func TestArmyCampScopeIsDistrict(t *testing.T) {
	svc := NewArmyCampService(newTestDB(t), noopInvalidator(t), testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, asScopeAdmin("kaunia"), validArmyCamp())
	assert.ErrorIs(t, err, ErrUnauthorized)

	camp, err := svc.Create(ctx, asScopeAdmin("rangpur"), validArmyCamp())
	require.NoError(t, err)

	err = svc.Delete(ctx, asNobody(), camp.ID.String(), "rangpur")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.NoError(t, svc.Delete(ctx, asScopeAdmin("rangpur"), camp.ID.String(), "rangpur"))
}
