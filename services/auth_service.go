package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"
	"github.com/ADat1304/Project-cafe/repository"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*gateway.AuthResult, error)
}

// SessionStore persists sessions between requests. Get returns
// repository.ErrSessionNotFound for unknown ids.
type SessionStore interface {
	Create(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type SessionUser struct {
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      SessionUser `json:"user"`
}

// AuthService logs admins in against the gateway and owns the session
// lifecycle: a session exists from Login until Logout or expiry.
type AuthService struct {
	gw     Authenticator
	store  SessionStore
	carts  *CartService
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(gw Authenticator, store SessionStore, carts *CartService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{gw: gw, store: store, carts: carts, secret: secret, ttl: ttl, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid(InvalidField, "username", "username is required")
	}
	if password == "" {
		return nil, invalid(InvalidField, "password", "password is required")
	}

	res, err := s.gw.Authenticate(ctx, username, password)
	if err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) && ge.Message == "" && (ge.Status == 401 || ge.Status == 403) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if res.Token == "" {
		return nil, ErrInvalidCredentials
	}

	claims := gatewayClaims(res.Token)
	roles := utils.NormalizeRoles(res.Roles...)
	if len(roles) == 0 {
		roles = claims.roles
	}
	name := res.Username
	if name == "" {
		name = claims.subject
	}
	if name == "" {
		name = username
	}

	now := s.now()
	expires := now.Add(s.ttl)
	if !claims.expires.IsZero() && claims.expires.Before(expires) {
		expires = claims.expires
	}
	sess := &entity.Session{
		ID:           uuid.NewString(),
		GatewayToken: res.Token,
		Username:     name,
		FullName:     res.FullName,
		Roles:        strings.Join(roles, " "),
		CreatedAt:    now,
		ExpiresAt:    expires,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := utils.GenerateToken(sess.ID, sess.Username, roles, s.secret, expires.Sub(now))
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expires,
		User:      SessionUser{Username: sess.Username, FullName: sess.FullName, Roles: roles},
	}, nil
}

// Authorize resolves a BFF token to its live session.
func (s *AuthService) Authorize(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := utils.ParseToken(token, s.secret)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		s.end(ctx, sess.ID)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.end(ctx, sessionID)
}

func (s *AuthService) end(ctx context.Context, sessionID string) error {
	if s.carts != nil {
		s.carts.Drop(sessionID)
	}
	return s.store.Delete(ctx, sessionID)
}

// Sweep removes expired sessions; run periodically from main.
func (s *AuthService) Sweep(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.now())
}

type tokenClaims struct {
	subject string
	roles   []string
	expires time.Time
}

// gatewayClaims reads the gateway token's subject, scope and expiry without
// verifying it; the gateway remains the authority on its own tokens.
func gatewayClaims(token string) tokenClaims {
	var out tokenClaims
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return out
	}
	out.subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.expires = exp.Time
	}
	for _, key := range []string{"scope", "scp", "roles", "authorities"} {
		switch v := mc[key].(type) {
		case string:
			out.roles = utils.NormalizeRoles(v)
		case []any:
			raw := make([]string, 0, len(v))
			for _, r := range v {
				if s, ok := r.(string); ok {
					raw = append(raw, s)
				}
			}
			out.roles = utils.NormalizeRoles(raw...)
		}
		if len(out.roles) > 0 {
			break
		}
	}
	return out
}
