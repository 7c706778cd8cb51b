package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/config"
	"github.com/campus-market/marketplace-service/internal/domain"
	"github.com/campus-market/marketplace-service/internal/events"
	"github.com/campus-market/marketplace-service/internal/repository"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

// AccountService coordinates registration, login and profile flows.
type AccountService struct {
	users      repository.UserRepository
	sessions   auth.SessionStore
	dispatcher events.Dispatcher
	bcryptCost int
}

// AccountDependencies bundles requirements for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   auth.SessionStore
	Dispatcher events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	NyuID       string
	Email       string
	AccountName string
	Password    string
}

// Register creates a new account. Email is normalized to lowercase/trimmed
// and the account name trimmed before the uniqueness checks.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	accountName := strings.TrimSpace(input.AccountName)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByAccountName(ctx, accountName); err == nil {
		return nil, apperrors.NewConflict("Account name already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		AccountName:  accountName,
		PasswordHash: hash,
		NyuID:        input.NyuID,
		UsageType:    []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration can still win the race; the unique
		// constraint rejection surfaces as a conflict
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Duplicate field value entered", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		UserID:      user.ID,
		Email:       user.Email,
		AccountName: user.AccountName,
	})
	return user, nil
}

// Login authenticates by email and password and opens a session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("Invalid email or password")
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

// Logout destroys the caller's session.
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

// Profile loads the user record for a profile read.
func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdateInput carries the optional profile fields. Nil means the
// field was absent from the payload and keeps its prior value.
type ProfileUpdateInput struct {
	Email       *string
	AccountName *string
	NyuID       *string
	Bio         *string
	Password    *string
}

// UpdateProfile applies a partial update; the password is re-hashed only
// when a new one is supplied.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.AccountName != nil {
		user.AccountName = strings.TrimSpace(*input.AccountName)
	}
	if input.NyuID != nil {
		user.NyuID = *input.NyuID
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Duplicate field value entered", nil)
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
