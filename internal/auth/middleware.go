package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/campus-market/marketplace-service/internal/domain"
	"github.com/campus-market/marketplace-service/internal/repository"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the lifetime of one
// request. The user's password hash is withheld.
type Principal struct {
	SessionID string
	User      *domain.User
}

// SessionMiddleware resolves the session cookie to a user and gates access
// to authenticated routes.
type SessionMiddleware struct {
	sessions   SessionStore
	users      repository.UserRepository
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions SessionStore, users repository.UserRepository, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, users: users, cookieName: cookieName}
}

// Handle enforces an active session for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional resolves a session when one is supplied but lets the request
// continue anonymously otherwise. Used by roommate creation, which tolerates
// a missing author.
func (m *SessionMiddleware) Optional(c *fiber.Ctx) error {
	if principal, err := m.resolve(c); err == nil {
		c.Locals(principalKey, principal)
	}
	return c.Next()
}

func (m *SessionMiddleware) resolve(c *fiber.Ctx) (*Principal, error) {
	sessionID := c.Cookies(m.cookieName)
	if sessionID == "" {
		return nil, apperrors.NewUnauthorized("Not authorized, no session")
	}

	userID, err := m.sessions.Resolve(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperrors.NewUnauthorized("Not authorized, no session")
		}
		return nil, apperrors.MapError(err)
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Not authorized, no user found")
		}
		return nil, apperrors.MapError(err)
	}

	user.PasswordHash = ""
	return &Principal{SessionID: sessionID, User: user}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
