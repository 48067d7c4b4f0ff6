package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleBody struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Password string `json:"password" validate:"omitempty,password"`
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []map[string]string {
	t.Helper()
	var body struct {
		Success bool                `json:"success"`
		Errors  []map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	return body.Errors
}

func TestValidateJSONAcceptsValidBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var dst sampleBody
	if err := ValidateJSON(rec, r, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Name != "Ada" || dst.Email != "ada@example.com" {
		t.Fatalf("body not bound: %+v", dst)
	}
}

func TestValidateJSONRejectsWrongContentType(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	var dst sampleBody
	if err := ValidateJSON(rec, r, &dst); err == nil {
		t.Fatal("expected content-type rejection")
	}
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestValidateJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com","admin":true}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var dst sampleBody
	if err := ValidateJSON(rec, r, &dst); err == nil {
		t.Fatal("expected unknown-field rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestValidateJSONFieldErrorsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"","email":"nope"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var dst sampleBody
	if err := ValidateJSON(rec, r, &dst); err == nil {
		t.Fatal("expected validation failure")
	}
	errs := decodeErrors(t, rec)

	fields := make(map[string]string)
	for _, e := range errs {
		fields[e["field"]] = e["message"]
	}
	if fields["name"] != "Name is required" {
		t.Fatalf("name message: %q", fields["name"])
	}
	if fields["email"] != "Please enter a valid email" {
		t.Fatalf("email message: %q", fields["email"])
	}
}

func TestPhoneValidation(t *testing.T) {
	ok := sampleBody{Name: "Ada", Email: "ada@example.com", Phone: "+234 (0) 801-234-5678"}
	if err := validate.Struct(&ok); err != nil {
		t.Fatalf("valid phone rejected: %v", err)
	}
	bad := sampleBody{Name: "Ada", Email: "ada@example.com", Phone: "call me maybe"}
	if err := validate.Struct(&bad); err == nil {
		t.Fatal("invalid phone accepted")
	}
}

func TestPasswordComplexityValidation(t *testing.T) {
	ok := sampleBody{Name: "Ada", Email: "ada@example.com", Password: "Str0ng@Pass"}
	if err := validate.Struct(&ok); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	for _, weak := range []string{"alllowercase1@", "ALLUPPERCASE1@", "NoDigits@Here", "NoSpecials123A"} {
		bad := sampleBody{Name: "Ada", Email: "ada@example.com", Password: weak}
		if err := validate.Struct(&bad); err == nil {
			t.Fatalf("weak password %q accepted", weak)
		}
	}
}
