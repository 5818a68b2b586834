package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/Gokul-1737/mk-glass-dashboard/pkg/auth"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/config"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

type recordingChecker struct {
	live    bool
	err     error
	lastJTI string
}

func (c *recordingChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	c.lastJTI = accessID
	return c.live, c.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "middleware-test-secret",
		Issuer:            "mkshop-test",
		ExpirationMinutes: 15,
	}
}

func testMiddlewareLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard})
}

func mintTestToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		Email: "admin@mkshop.dev",
		JTI:   jti,
	})
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func TestAuthSeedsOperatorContext(t *testing.T) {
	checker := &recordingChecker{live: true}

	var gotEmail, gotSession string
	handler := Auth(testJWTConfig(), checker, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = OperatorFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-123"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected handler to run, got %d: %s", w.Code, w.Body.String())
	}
	if gotEmail != "admin@mkshop.dev" {
		t.Fatalf("unexpected operator email %q", gotEmail)
	}
	if gotSession != "jti-123" {
		t.Fatalf("unexpected session id %q", gotSession)
	}
	if checker.lastJTI != "jti-123" {
		t.Fatalf("session check used jti %q", checker.lastJTI)
	}
}

func TestAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	handler := Auth(testJWTConfig(), &recordingChecker{live: true}, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	cases := map[string]string{
		"no header":     "",
		"wrong scheme":  "Basic abc",
		"garbage token": "Bearer not-a-jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().Add(-time.Hour), pkgauth.AccessTokenPayload{
		Email: "admin@mkshop.dev",
		JTI:   "jti-expired",
	})
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	handler := Auth(testJWTConfig(), &recordingChecker{live: true}, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	handler := Auth(testJWTConfig(), &recordingChecker{live: false}, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-revoked"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", w.Code)
	}
}
