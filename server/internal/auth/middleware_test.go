package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// passHandler answers 200 "ok".
var passHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

func callWithKey(t *testing.T, mw func(http.Handler) http.Handler, header, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/limits", nil)
	if key != "" {
		req.Header.Set(header, key)
	}
	rec := httptest.NewRecorder()
	mw(passHandler).ServeHTTP(rec, req)
	return rec
}

func TestAPIKey_ModeNone_PassesThrough(t *testing.T) {
	mw := APIKey("none", "x-api-key", "secret")
	// No key on the request; should still pass because mode != "apikey".
	rec := callWithKey(t, mw, "x-api-key", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("got %d %q, want 200 ok", rec.Code, rec.Body.String())
	}
}

func TestAPIKey_EmptyKey_PassesThrough(t *testing.T) {
	// key="" means auth is not configured; allow all.
	mw := APIKey("apikey", "x-api-key", "")
	rec := callWithKey(t, mw, "x-api-key", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestAPIKey_CorrectKey_Passes(t *testing.T) {
	mw := APIKey("apikey", "x-api-key", "supersecret")
	rec := callWithKey(t, mw, "x-api-key", "supersecret")
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestAPIKey_HeaderIsCaseInsensitive(t *testing.T) {
	mw := APIKey("apikey", "X-Motor-Key", "supersecret")
	rec := callWithKey(t, mw, "x-motor-key", "supersecret")
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestAPIKey_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		key     string
		wantMsg string
	}{
		{"missing key", "x-api-key", "", "missing api key"},
		{"wrong key", "x-api-key", "wrong", "invalid api key"},
		{"prefix of key", "x-api-key", "super", "invalid api key"},
		{"wrong header", "x-other", "supersecret", "missing api key"},
	}
	mw := APIKey("apikey", "x-api-key", "supersecret")
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := callWithKey(t, mw, tc.header, tc.key)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", rec.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tc.wantMsg {
				t.Errorf("error: got %q, want %q", body["error"], tc.wantMsg)
			}
		})
	}
}
