package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// compactJSON re-encodes s so documents can be compared regardless of key order.
func compactJSON(t *testing.T, s []byte) string {
	t.Helper()
	var v any
	if err := json.Unmarshal(s, &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", s, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	return string(out)
}

func TestWriteJSON(t *testing.T) {
	type clientURL struct {
		ClientID  int64  `json:"clientId"`
		ClientURL string `json:"clientUrl"`
	}

	tests := []struct {
		name   string
		status int
		body   any
		want   string
	}{
		{"struct", http.StatusOK, clientURL{43, "drjuangarcia43"}, `{"clientId":43,"clientUrl":"drjuangarcia43"}`},
		{"created", http.StatusCreated, map[string]int64{"id": 44}, `{"id":44}`},
		{"list", http.StatusOK, []clientURL{{43, "drjuangarcia43"}, {44, "elreydetacos44"}},
			`[{"clientId":43,"clientUrl":"drjuangarcia43"},{"clientId":44,"clientUrl":"elreydetacos44"}]`},
		{"empty list", http.StatusOK, []clientURL{}, `[]`},
		{"nested", http.StatusOK, map[string]any{"translations": map[string]any{"es": map[string]string{"hero": "Hola"}}},
			`{"translations":{"es":{"hero":"Hola"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteJSON(rr, tt.status, tt.body)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if got, want := compactJSON(t, rr.Body.Bytes()), compactJSON(t, []byte(tt.want)); got != want {
				t.Errorf("body = %s, want %s", got, want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		message string
		details any
		want    string
	}{
		{
			name:    "message only",
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "Client not found",
			want:    `{"error":"not_found","message":"Client not found"}`,
		},
		{
			name:   "code only",
			status: http.StatusInternalServerError,
			code:   "internal_error",
			want:   `{"error":"internal_error"}`,
		},
		{
			name:    "with details",
			status:  http.StatusBadRequest,
			code:    "invalid_input",
			message: "invalid config",
			details: []string{"name is required", "reviews[0].rating must be between 1 and 5"},
			want: `{"error":"invalid_input","message":"invalid config",` +
				`"details":["name is required","reviews[0].rating must be between 1 and 5"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.status, tt.code, tt.message, tt.details)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
			if got, want := compactJSON(t, rr.Body.Bytes()), compactJSON(t, []byte(tt.want)); got != want {
				t.Errorf("body = %s, want %s", got, want)
			}
		})
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusOK, map[string]any{"bad": make(chan int)})

	// The status is already out by the time encoding fails.
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("bad")) {
		t.Errorf("unexpected partial body %q", rr.Body.String())
	}
}

func TestWriteNoContent(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteNoContent(rr)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rr.Body.String())
	}
}

func TestRedirectPermanent(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/juangarcia43", nil)
	RedirectPermanent(rr, req, "/drjuangarcia43")

	if rr.Code != http.StatusMovedPermanently {
		t.Errorf("status = %d, want 301", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/drjuangarcia43" {
		t.Errorf("Location = %q, want /drjuangarcia43", got)
	}
}
