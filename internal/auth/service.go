package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/Gokul-1737/mk-glass-dashboard/pkg/auth"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/auth/session"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/config"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/security"
)

// Service authenticates the dashboard operator and manages their session.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type loginLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type service struct {
	operator  config.OperatorConfig
	jwt       config.JWTConfig
	rateLimit config.AuthRateLimitConfig
	sessions  sessionManager
	limiter   loginLimiter
	logg      *logger.Logger
	now       func() time.Time
}

// NewService constructs the operator auth service. limiter and logg are
// optional; without a limiter logins are not throttled.
func NewService(cfg *config.Config, sessions sessionManager, limiter loginLimiter, logg *logger.Logger) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if strings.TrimSpace(cfg.Operator.Email) == "" {
		return nil, fmt.Errorf("operator email required")
	}
	if cfg.Operator.Password == "" && cfg.Operator.PasswordHash == "" {
		return nil, fmt.Errorf("operator password or password hash required")
	}
	return &service{
		operator:  cfg.Operator,
		jwt:       cfg.JWT,
		rateLimit: cfg.AuthRateLimit,
		sessions:  sessions,
		limiter:   limiter,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Login checks the operator credentials in constant time and opens a new
// session. Failed and succeeded attempts are indistinguishable in timing.
func (s *service) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if err := s.allowLogin(ctx, email, input.RemoteIP); err != nil {
		return nil, err
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(s.operator.Email)))
	passwordOK := s.verifyPassword(ctx, input.Password)
	if emailOK != 1 || !passwordOK {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.openSession(ctx, email)
}

// Refresh rotates the refresh token and mints a fresh access token. The
// expired access token is still required: its jti names the session.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error) {
	if strings.TrimSpace(input.AccessToken) == "" || strings.TrimSpace(input.RefreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access and refresh tokens are required")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, input.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		Email: claims.Email,
		JTI:   newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:  token,
		RefreshToken: newRefresh,
		ExpiresIn:    s.jwt.ExpirationMinutes * 60,
	}, nil
}

// Logout revokes the session named by the token's jti. An expired access
// token can still end its own session.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access token is required")
	}
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) openSession(ctx context.Context, email string) (*TokenPair, error) {
	accessID := session.NewAccessID()
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		Email: email,
		JTI:   accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:  token,
		RefreshToken: refresh,
		ExpiresIn:    s.jwt.ExpirationMinutes * 60,
	}, nil
}

// verifyPassword checks against the Argon2id hash when one is configured,
// otherwise against the plain development password in constant time.
func (s *service) verifyPassword(ctx context.Context, password string) bool {
	if s.operator.PasswordHash != "" {
		ok, err := security.VerifyPassword(password, s.operator.PasswordHash)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, fmt.Sprintf("operator password hash: %v", err))
			}
			return false
		}
		return ok
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.operator.Password)) == 1
}

// allowLogin enforces the fixed-window login limits per email and per IP.
func (s *service) allowLogin(ctx context.Context, email, remoteIP string) error {
	if s.limiter == nil {
		return nil
	}
	scopes := []struct {
		scope string
		limit int64
	}{
		{scope: "login:email:" + email, limit: int64(s.rateLimit.LoginEmailLimit)},
	}
	if strings.TrimSpace(remoteIP) != "" {
		scopes = append(scopes, struct {
			scope string
			limit int64
		}{scope: "login:ip:" + remoteIP, limit: int64(s.rateLimit.LoginIPLimit)})
	}
	for _, sc := range scopes {
		if sc.limit <= 0 {
			continue
		}
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, sc.scope, sc.limit, s.rateLimit.LoginWindow)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, fmt.Sprintf("login rate limit check: %v", err))
			}
			return nil
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts")
		}
	}
	return nil
}
