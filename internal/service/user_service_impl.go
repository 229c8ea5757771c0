package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	users    repository.UserRepo
	cost     int
	observer UseCaseObserver
}

// NewUserService builds the account service. cost is the bcrypt work
// factor; values below bcrypt.MinCost use bcrypt.DefaultCost.
func NewUserService(users repository.UserRepo, cost int, observers ...UseCaseObserver) UserService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &userService{users: users, cost: cost, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) Login(ctx context.Context, username, password string) (u *domain.User, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "login", startedAt, map[string]any{"username": username}, nil, err)
	}()

	u, err = s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) Save(ctx context.Context, u *domain.User, password string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "save-user", startedAt, map[string]any{"username": u.Username, "role": string(u.Role)}, nil, err)
	}()

	u.Username = strings.TrimSpace(u.Username)
	if err = u.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	isNew := u.ID == ""
	if !isNew {
		existing, getErr := s.users.GetByID(ctx, u.ID)
		switch {
		case errors.Is(getErr, repository.ErrNotFound):
			isNew = true
		case getErr != nil:
			return getErr
		default:
			u.CreatedAt = existing.CreatedAt
			if password == "" {
				u.PasswordHash = existing.PasswordHash
			}
		}
	} else {
		u.ID = uuid.New().String()
	}

	if password != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if hashErr != nil {
			return fmt.Errorf("hashing password: %w", hashErr)
		}
		u.PasswordHash = string(hash)
	} else if isNew {
		return ErrPasswordRequired
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return s.users.Upsert(ctx, u)
}

func (s *userService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "delete-user", startedAt, map[string]any{"user_id": id}, nil, err)
	}()
	return s.users.Delete(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Resolve(ctx context.Context, ref string) (*domain.User, error) {
	ref = strings.TrimSpace(ref)
	u, err := s.users.GetByID(ctx, ref)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.users.GetByUsername(ctx, ref)
}
