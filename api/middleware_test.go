package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/skillbridge/api"
	"github.com/garnizeh/skillbridge/pkg/repository/mock"
	"github.com/golang-jwt/jwt/v5"
)

// captureLogs routes the api logger into a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	api.SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { api.SetLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))) })
	return &buf
}

func TestPreflight(t *testing.T) {
	h := newRouter(mock.NewStore())

	paths := []string{
		"/api/courses",
		"/api/courses/c-1",
		"/api/roadmaps/r-1/steps/s-1",
		"/api/auth/logout",
		"/api/unknown",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, p, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			if res.StatusCode != http.StatusNoContent {
				t.Fatalf("expected 204, got %d", res.StatusCode)
			}
			if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
				t.Fatalf("expected allow origin *, got %q", got)
			}
			if got := res.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PUT") {
				t.Fatalf("expected PUT in allow methods, got %q", got)
			}
			if got := res.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Authorization") {
				t.Fatalf("expected Authorization in allow headers, got %q", got)
			}
		})
	}
}

func TestCORSHeadersOnRoutes(t *testing.T) {
	h := newRouter(mock.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected allow origin on GET, got %q", got)
	}
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	buf := captureLogs(t)
	h := newRouter(mock.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/api/courses/missing", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(raw, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", raw, err)
		}
		if entry["msg"] == "request" {
			line = entry
		}
	}
	if line == nil || line["msg"] != "request" || line["path"] != "/api/courses/missing" || line["method"] != "GET" {
		t.Fatalf("unexpected log line %v", line)
	}
	if status, _ := line["status"].(float64); int(status) != http.StatusNotFound {
		t.Fatalf("expected logged status 404, got %v", line["status"])
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	buf := captureLogs(t)

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("roadmap handler exploded")
	})
	w := httptest.NewRecorder()
	api.RecoveryMiddleware(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/roadmaps/r-1/steps/s-1", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from panic recovery, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal Server Error") {
		t.Fatalf("unexpected body for recovery: %s", w.Body.String())
	}
	if !strings.Contains(buf.String(), "roadmap handler exploded") {
		t.Fatalf("expected panic value in log, got %s", buf.String())
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) })
	w = httptest.NewRecorder()
	api.RecoveryMiddleware(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected pass-through status, got %d", w.Code)
	}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tokStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tokStr
}

func TestJWTMiddlewares_UserIDClaim(t *testing.T) {
	secret := "s3cr3t"
	var gotID string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = api.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	valid := signToken(t, secret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, secret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
	otherKey := signToken(t, "other", jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Hour).Unix()})

	cases := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		authHeader string
		wantStatus int
		wantID     string
	}{
		{"Strict_MissingHeader", api.JWTAuthMiddlewareWithSecret(secret), "", http.StatusUnauthorized, ""},
		{"Strict_EmptyBearer", api.JWTAuthMiddlewareWithSecret(secret), "Bearer ", http.StatusUnauthorized, ""},
		{"Strict_Garbage", api.JWTAuthMiddlewareWithSecret(secret), "Bearer bad.token.here", http.StatusUnauthorized, ""},
		{"Strict_Valid", api.JWTAuthMiddlewareWithSecret(secret), "Bearer " + valid, http.StatusOK, "u-1"},
		{"Strict_Expired", api.JWTAuthMiddlewareWithSecret(secret), "Bearer " + expired, http.StatusUnauthorized, ""},
		{"Strict_WrongKey", api.JWTAuthMiddlewareWithSecret(secret), "Bearer " + otherKey, http.StatusUnauthorized, ""},
		{"Strict_NotBearer", api.JWTAuthMiddlewareWithSecret(secret), "Basic abc", http.StatusUnauthorized, ""},
		{"Optional_Valid", api.OptionalJWTMiddleware(secret), "Bearer " + valid, http.StatusOK, "u-1"},
		{"Optional_None", api.OptionalJWTMiddleware(secret), "", http.StatusOK, ""},
		{"Optional_Expired", api.OptionalJWTMiddleware(secret), "Bearer " + expired, http.StatusOK, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotID, gotOK = "", false
			req := httptest.NewRequest(http.MethodGet, "/jwt", nil)
			if c.authHeader != "" {
				req.Header.Set("Authorization", c.authHeader)
			}
			w := httptest.NewRecorder()
			c.mw(next).ServeHTTP(w, req)
			if w.Result().StatusCode != c.wantStatus {
				t.Fatalf("want status %d got %d", c.wantStatus, w.Result().StatusCode)
			}
			if gotID != c.wantID || gotOK != (c.wantID != "") {
				t.Fatalf("user id in context = %q (%v), want %q", gotID, gotOK, c.wantID)
			}
		})
	}
}
