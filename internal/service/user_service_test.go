package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (UserService, *repository.SQLiteUserRepo) {
	t.Helper()
	repo := repository.NewSQLiteUserRepo(testutil.NewTestDB(t))
	return NewUserService(repo, bcrypt.MinCost), repo
}

func TestUserService_SaveAndLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	u := &domain.User{Username: " cajera ", Role: domain.RoleWorker, AllowedLocales: []domain.Locale{domain.LocaleUwu}}
	require.NoError(t, svc.Save(ctx, u, "secreto"))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "cajera", u.Username)
	assert.NotEqual(t, "secreto", u.PasswordHash)

	got, err := svc.Login(ctx, "Cajera", "secreto")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "cajera", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nadie", "secreto")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	u := &domain.User{Username: "empleado3", Role: domain.RoleWorker}
	require.NoError(t, svc.Save(ctx, u, "abc"))
	created := u.CreatedAt

	update := &domain.User{ID: u.ID, Username: "empleado3", Role: domain.RoleAdmin}
	require.NoError(t, svc.Save(ctx, update, ""))

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
	assert.True(t, created.Equal(stored.CreatedAt))

	_, err = svc.Login(ctx, "empleado3", "abc")
	assert.NoError(t, err)
}

func TestUserService_NewUserNeedsPassword(t *testing.T) {
	svc, _ := newUserService(t)

	err := svc.Save(context.Background(), &domain.User{Username: "x", Role: domain.RoleWorker}, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	err = svc.Save(context.Background(), &domain.User{Username: "", Role: domain.RoleWorker}, "p")
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestUserService_ResolveAndDelete(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	u := &domain.User{Username: "empleado1", Role: domain.RoleWorker}
	require.NoError(t, svc.Save(ctx, u, "123"))

	byID, err := svc.Resolve(ctx, u.ID)
	require.NoError(t, err)
	byName, err := svc.Resolve(ctx, "empleado1")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byName.ID)

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err = svc.Resolve(ctx, "empleado1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserService_DuplicateUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, &domain.User{Username: "jefe", Role: domain.RoleAdmin}, "1"))
	err := svc.Save(ctx, &domain.User{Username: "jefe", Role: domain.RoleWorker}, "2")
	assert.ErrorIs(t, err, repository.ErrConflict)
}
