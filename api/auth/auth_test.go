package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func signWithExpiry(t *testing.T, userID uuid.UUID, ttl time.Duration, secret string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Add(-time.Minute).Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	userID := uuid.New()
	token, err := GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user ID %s got %s", userID, got)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	token := signWithExpiry(t, uuid.New(), -time.Hour, "testsecret")

	_, err := ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	token := signWithExpiry(t, uuid.New(), time.Hour, "someothersecret")

	_, err := ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := ParseToken(tok)
		if !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestParseToken_MissingUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testsecret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func okHandler(seen *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserIDFromContext(r.Context()); ok {
			*seen = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_NoCookie(t *testing.T) {
	var seen uuid.UUID
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()

	Middleware(okHandler(&seen)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
	if seen != uuid.Nil {
		t.Fatal("handler should not run without a credential")
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	var seen uuid.UUID
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signWithExpiry(t, uuid.New(), -time.Hour, "testsecret")})
	rec := httptest.NewRecorder()

	Middleware(okHandler(&seen)).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d got %d", http.StatusForbidden, rec.Code)
	}

	// The stale cookie must be cleared so the client stops resending it.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the token cookie to be cleared")
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	userID := uuid.New()
	token, err := GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var seen uuid.UUID
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()

	Middleware(okHandler(&seen)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	if seen != userID {
		t.Fatalf("expected context user ID %s got %s", userID, seen)
	}
}
