package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, expires, err := tm.GenerateToken("helpdesk-ui", ScopeProcessTickets)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expires) > 5*time.Minute || time.Until(expires) <= 4*time.Minute {
		t.Fatalf("unexpected expiry %v", expires)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Service != "helpdesk-ui" || claims.Subject != "helpdesk-ui" || claims.Issuer != issuer {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if len(claims.Scopes) != 1 || claims.Scopes[0] != ScopeProcessTickets {
		t.Fatalf("unexpected scopes %v", claims.Scopes)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, _, _ := tm.GenerateToken("svc")

	if _, err := NewTokenManager("other", 5).ParseToken(token); err == nil {
		t.Fatal("expected signature mismatch")
	}

	expired := NewTokenManager("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.GenerateToken("svc")
	if _, err := tm.ParseToken(old); err == nil {
		t.Fatal("expected expired token to fail")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Service: "svc", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := tm.ParseToken(unsigned); err == nil {
		t.Fatal("expected unsigned token to fail")
	}

	if _, _, err := tm.GenerateToken(""); err == nil {
		t.Fatal("expected service name to be required")
	}
}

func newProtectedApp(tm *TokenManager, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	chain := append([]fiber.Handler{NewAuthMiddleware(tm).Handle}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.Service)
	})
	app.Get("/", chain...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	valid, _, _ := tm.GenerateToken("helpdesk-ui", ScopeProcessTickets)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization header"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, "helpdesk-ui"},
		{"lower case scheme", "bearer " + valid, http.StatusOK, "helpdesk-ui"},
	}
	app := newProtectedApp(tm)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tc.status || string(body) != tc.body {
				t.Fatalf("expected %d %q, got %d %q", tc.status, tc.body, resp.StatusCode, body)
			}
		})
	}
}

func TestRequireScope(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	app := newProtectedApp(tm, RequireScope(ScopeProcessTickets))

	scoped, _, _ := tm.GenerateToken("helpdesk-ui", ScopeProcessTickets)
	unscoped, _, _ := tm.GenerateToken("reporting")

	for token, want := range map[string]int{scoped: http.StatusOK, unscoped: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != want {
			t.Fatalf("expected %d, got %d", want, resp.StatusCode)
		}
	}
}
