package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mvillanueva/tindahan/internal/domain"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ErrorCodeToHTTPStatus(tt.code); got != tt.expected {
				t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", tt.code, got, tt.expected)
			}
		})
	}
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func TestError_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)

	Error(w, r, domain.NotFound("order.get", "order", "abc"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}

	var body errorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Code != domain.ENOTFOUND {
		t.Errorf("code = %q, want %q", body.Code, domain.ENOTFOUND)
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

	Error(w, r, domain.Internal(errors.New("pq: connection refused"), "order.list", "failed to list orders"))

	var body errorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Contains(body.Error, "connection refused") {
		t.Errorf("internal detail leaked to the client: %q", body.Error)
	}
}

func TestDecode_ValidatesPayload(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	var p payload

	err := Decode(r, &p)

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestDecode_RejectsEmptyBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var p payload

	err := Decode(r, &p)

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestJSON_WritesSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, map[string]string{"order_number": "ORD-00001"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Data["order_number"] != "ORD-00001" {
		t.Errorf("data = %v", body.Data)
	}
}
