package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/testutil"
)

func TestCrud_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")
	other := testutil.SeedSalon(t, db, "Asia/Kolkata")
	ctx := context.Background()

	repo := NewCrud[models.Service](db, "service")

	svc := &models.Service{SalonID: salon.ID, Name: "Haircut", DurationMin: 30, Price: money.Rupees(500), Active: true}
	require.NoError(t, repo.Create(ctx, svc))
	require.NoError(t, repo.Create(ctx, &models.Service{SalonID: other.ID, Name: "Shave"}))

	list, err := repo.List(ctx, salon.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Haircut", list[0].Name)

	updated, err := repo.Update(ctx, salon.ID, svc.ID, func(s *models.Service) error {
		s.Price = money.Rupees(650)
		s.Active = false
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, money.Rupees(650), updated.Price)
	assert.False(t, updated.Active)

	_, err = repo.Get(ctx, other.ID, svc.ID)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	require.NoError(t, repo.Delete(ctx, salon.ID, svc.ID))
	assert.True(t, httperr.IsBusiness(repo.Delete(ctx, salon.ID, svc.ID), "service_not_found"))
}

func TestCrud_UpdateRollsBackOnMutateError(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")
	ctx := context.Background()
	repo := NewCrud[models.Client](db, "client")

	c := &models.Client{SalonID: salon.ID, Name: "Asha"}
	require.NoError(t, repo.Create(ctx, c))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, salon.ID, c.ID, func(cl *models.Client) error {
		cl.Name = "Changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, salon.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)

	_, err = repo.Update(ctx, salon.ID, 999, func(*models.Client) error { return nil })
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCrud_StylistPreloadsBreaksInOrder(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")
	ctx := context.Background()

	st := &models.Stylist{SalonID: salon.ID, Name: "Meera", Specialties: []string{"color", "cut"}, Available: true}
	require.NoError(t, db.Create(st).Error)
	require.NoError(t, db.Create(&models.StylistBreak{StylistID: st.ID, Position: 1, Reason: "tea"}).Error)
	require.NoError(t, db.Create(&models.StylistBreak{StylistID: st.ID, Position: 0, Reason: "lunch"}).Error)

	repo := NewCrud[models.Stylist](db, "stylist", BreaksInOrder)
	got, err := repo.Get(ctx, salon.ID, st.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"color", "cut"}, []string(got.Specialties))
	require.Len(t, got.Breaks, 2)
	assert.Equal(t, "lunch", got.Breaks[0].Reason)
	assert.Equal(t, "tea", got.Breaks[1].Reason)
}

func TestCrud_Search(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")
	ctx := context.Background()
	repo := NewCrud[models.Client](db, "client")

	require.NoError(t, repo.Create(ctx, &models.Client{SalonID: salon.ID, Name: "Asha Rao", Phone: "98450"}))
	require.NoError(t, repo.Create(ctx, &models.Client{SalonID: salon.ID, Name: "Kiran", Email: "kiran@rao.in"}))
	require.NoError(t, repo.Create(ctx, &models.Client{SalonID: salon.ID, Name: "Vijay"}))

	got, err := repo.Search(ctx, salon.ID, " RAO ", "name", "email")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Asha Rao", got[0].Name)

	got, err = repo.Search(ctx, salon.ID, "984", "name", "phone")
	require.NoError(t, err)
	require.Len(t, got, 1)

	all, err := repo.Search(ctx, salon.ID, "", "name")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
