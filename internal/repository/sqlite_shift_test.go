package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteShiftRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	u := testutil.NewTestUser("empleado1")
	end := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)

	s := testutil.NewTestShift(u, end, 8*time.Hour, testutil.WithShiftPause(30*time.Minute))
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "empleado1", got.Username)
	assert.True(t, end.Add(-8*time.Hour).Equal(got.StartTime))
	assert.True(t, end.Equal(got.EndTime))
	assert.Equal(t, 30*time.Minute, got.TotalPauseTime)
	assert.Equal(t, 7*time.Hour+30*time.Minute, got.TotalWorkTime)

	err = repo.Create(ctx, s)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestShiftRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteShiftRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShiftRepo_ListFiltersAndOrders(t *testing.T) {
	repo := NewSQLiteShiftRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	a := testutil.NewTestUser("ana")
	b := testutil.NewTestUser("beto")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	older := testutil.NewTestShift(a, base, time.Hour)
	newer := testutil.NewTestShift(a, base.Add(24*time.Hour), time.Hour)
	// Sub-second end times must still sort after whole-second ones.
	newest := testutil.NewTestShift(a, base.Add(24*time.Hour+250*time.Millisecond), time.Hour,
		testutil.WithShiftLocale(domain.LocaleUwu))
	other := testutil.NewTestShift(b, base.Add(time.Hour), time.Hour)
	for _, s := range []*domain.ShiftLog{older, newer, newest, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	all, err := repo.List(ctx, domain.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, newer.ID, all[1].ID)
	assert.Equal(t, other.ID, all[2].ID)
	assert.Equal(t, older.ID, all[3].ID)

	mine, err := repo.List(ctx, domain.ShiftFilter{UserID: a.ID, Locale: domain.LocaleYummy})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)

	limited, err := repo.List(ctx, domain.ShiftFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func TestShiftRepo_Deletes(t *testing.T) {
	repo := NewSQLiteShiftRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	a := testutil.NewTestUser("ana")
	b := testutil.NewTestUser("beto")
	end := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s1 := testutil.NewTestShift(a, end, time.Hour)
	s2 := testutil.NewTestShift(a, end.Add(time.Hour), time.Hour)
	s3 := testutil.NewTestShift(a, end, time.Hour, testutil.WithShiftLocale(domain.LocaleUwu))
	s4 := testutil.NewTestShift(b, end, time.Hour)
	for _, s := range []*domain.ShiftLog{s1, s2, s3, s4} {
		require.NoError(t, repo.Create(ctx, s))
	}

	require.NoError(t, repo.Delete(ctx, s1.ID))
	assert.ErrorIs(t, repo.Delete(ctx, s1.ID), ErrNotFound)

	n, err := repo.DeleteByUser(ctx, a.ID, domain.LocaleYummy)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := repo.List(ctx, domain.ShiftFilter{})
	require.NoError(t, err)
	assert.Len(t, left, 2)

	n, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestShiftRepo_SurvivesUserDeletion(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	users := NewSQLiteUserRepo(db)
	shifts := NewSQLiteShiftRepo(db)

	u := testutil.NewTestUser("ex-empleado")
	require.NoError(t, users.Create(ctx, u))
	s := testutil.NewTestShift(u, time.Now(), time.Hour)
	require.NoError(t, shifts.Create(ctx, s))
	require.NoError(t, users.Delete(ctx, u.ID))

	_, err := shifts.GetByID(ctx, s.ID)
	assert.NoError(t, err)
}
