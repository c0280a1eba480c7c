package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/services"
)

func TestRequireAuth_RejectsBadTokens(t *testing.T) {
	verifier := services.NewAuthService(nil, "test-secret")
	foreign := services.NewAuthService(nil, "other-secret")

	foreignToken, err := foreign.IssueToken(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(verifier, func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/task", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("protected handler ran without a valid token")
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if success, _ := body["success"].(bool); success {
				t.Error("success = true in an unauthorized response")
			}
		})
	}
}

func TestRequireAuth_InjectsUserID(t *testing.T) {
	verifier := services.NewAuthService(nil, "test-secret")
	userID := primitive.NewObjectID()

	token, err := verifier.IssueToken(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	var gotID primitive.ObjectID
	handler := RequireAuth(verifier, func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		if !ok {
			t.Error("user id missing from context")
		}
		gotID = id
	})

	req := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != userID {
		t.Errorf("context user id = %s, want %s", gotID.Hex(), userID.Hex())
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Error("no request id in context")
	}
	if got := rec.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("header id %q differs from context id %q", got, seen)
	}

	// An incoming id is preserved.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "fixed-id" {
		t.Errorf("incoming request id replaced with %q", seen)
	}
}
