package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogRepo_ListRecent(t *testing.T) {
	repo := NewSQLiteTimeLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	events := []domain.EventType{domain.EventEntrada, domain.EventPausa, domain.EventEntrada, domain.EventSalida}
	for i, ev := range events {
		require.NoError(t, repo.Create(ctx, &domain.TimeLog{
			ID:        uuid.New().String(),
			UserID:    "u1",
			Username:  "empleado1",
			Locale:    domain.LocaleYummy,
			Type:      ev,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.EventSalida, logs[0].Type)
	assert.True(t, base.Add(3*time.Minute).Equal(logs[0].Timestamp))
	assert.Equal(t, domain.EventEntrada, logs[1].Type)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTimeLogRepo_RejectsUnknownEvent(t *testing.T) {
	repo := NewSQLiteTimeLogRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), &domain.TimeLog{
		ID: "x", UserID: "u", Username: "u", Locale: domain.LocaleYummy, Type: "nap", Timestamp: time.Now(),
	})
	assert.Error(t, err)
}
