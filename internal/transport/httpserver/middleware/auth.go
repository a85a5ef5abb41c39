package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mess-manager-go/internal/config"
	"mess-manager-go/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated caller attached to the request context.
type User struct {
	ID    string
	Email string
	Name  string
}

// MemberSaver upserts the member row for every authenticated request so the
// members table always reflects the latest token claims.
type MemberSaver interface {
	EnsureMember(ctx context.Context, memberID, email, name string) error
}

type JWTAuth struct {
	secret   []byte
	issuer   string
	members  MemberSaver
	log      logger.Logger
	skipAuth bool
	mockUser User
}

type contextKey int

const userKey contextKey = iota

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func NewJWTAuth(cfg config.AuthConfig, members MemberSaver, log logger.Logger) *JWTAuth {
	return &JWTAuth{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		members:  members,
		log:      log,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockMemberID),
			Email: strings.TrimSpace(cfg.MockEmail),
			Name:  strings.TrimSpace(cfg.MockName),
		},
	}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			user := a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock member id not configured")
				return
			}
			a.saveMember(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
			return
		}

		if len(a.secret) == 0 {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.parseToken(token)
		if err != nil {
			unauthorized(w)
			return
		}

		a.saveMember(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *JWTAuth) parseToken(raw string) (User, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return User{}, err
	}
	if !parsed.Valid || c.Subject == "" {
		return User{}, fmt.Errorf("invalid token")
	}

	return User{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
	}, nil
}

func (a *JWTAuth) saveMember(ctx context.Context, user User) {
	if a.members == nil {
		return
	}
	if err := a.members.EnsureMember(ctx, user.ID, user.Email, user.Name); err != nil {
		a.log.InternalError("auth: ensure member failed", err, "member_id", user.ID)
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}
