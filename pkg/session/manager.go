package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session")

const DefaultTTL = 7 * 24 * time.Hour

// Meta is request information stored next to the session row.
type Meta struct {
	IpAddress string
	UserAgent string
}

// Identity is what a valid token resolves to.
type Identity struct {
	UserId    uuid.UUID
	SessionId uuid.UUID
}

type Options struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager issues signed session tokens backed by rows in user_sessions.
// A token is only honoured while its row exists and has not expired.
type Manager struct {
	uowFactory unitofwork.RepositoryFactory
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

func NewManager(uowFactory unitofwork.RepositoryFactory, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.CookieName == "" {
		opts.CookieName = "user_token"
	}
	return &Manager{
		uowFactory: uowFactory,
		secret:     []byte(opts.Secret),
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Tests use it to move past expiry.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) Issue(ctx context.Context, userId uuid.UUID, meta Meta) (string, error) {
	now := m.now()
	s := &entity.UserSession{
		Id:        uuid.New(),
		UserId:    userId,
		ExpiresAt: now.Add(m.ttl),
		IpAddress: meta.IpAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserSessionRepository().Create(ctx, s); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Subject:   userId.String(),
		ID:        s.Id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (m *Manager) Validate(ctx context.Context, token string) (*Identity, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidSession
	}
	sessionId, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidSession
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	s, err := uow.UserSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ExpiresAfter{Time: m.now()},
	)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if s == nil || s.UserId != userId {
		return nil, ErrInvalidSession
	}

	return &Identity{UserId: userId, SessionId: sessionId}, nil
}

// Revoke deletes the session row behind token. Unparseable tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	sessionId, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	return uow.UserSessionRepository().Delete(ctx, sessionId)
}

// PurgeExpired removes rows whose expiry has passed.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	return uow.UserSessionRepository().DeleteExpired(ctx, m.now())
}

func (m *Manager) Cookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (m *Manager) ClearCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
