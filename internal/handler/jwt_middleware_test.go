package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "secreto-de-test"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("firmando token: %v", err)
	}
	return s
}

func TestJWTAuth(t *testing.T) {
	var gotUserID int
	protected := JWTAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("token válido pasa y deja el userId en contexto", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/me/favorites", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotUserID != 42 {
			t.Errorf("userId = %d, se esperaba 42", gotUserID)
		}
	})

	t.Run("sin header devuelve 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me/favorites", nil)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("firma con otro secreto devuelve 401", func(t *testing.T) {
		tok := signToken(t, "otro-secreto", jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/me/favorites", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("token vencido devuelve 401", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/me/favorites", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("token sin sub devuelve 401", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/me/favorites", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestNoStore(t *testing.T) {
	h := NoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("rutas volátiles llevan no-store", func(t *testing.T) {
		for _, path := range []string{"/search", "/me/favorites", "/me/recommendations/history"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if cc := rec.Header().Get("Cache-Control"); cc == "" {
				t.Errorf("%s sin Cache-Control", path)
			}
		}
	})

	t.Run("el resto queda cacheable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if cc := rec.Header().Get("Cache-Control"); cc != "" {
			t.Errorf("Cache-Control = %q en /health", cc)
		}
	})
}
