package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return w, body
}

func TestRespond_Validation(t *testing.T) {
	w, body := respond(t, Validation(errors.New("rating must be between 0.0 and 5.0")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if body["error"] != "Validation Error" {
		t.Errorf("error = %v, want Validation Error", body["error"])
	}
	if _, ok := body["details"]; !ok {
		t.Error("expected details field in validation response")
	}
}

func TestRespond_NotFound(t *testing.T) {
	w, _ := respond(t, NotFound(errors.New("no such supplier")))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRespond_GormRecordNotFound(t *testing.T) {
	w, _ := respond(t, gorm.ErrRecordNotFound)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRespond_Protected(t *testing.T) {
	w, body := respond(t, Protected(errors.New("supplier has ingredients")))
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if body["error"] != "Protected Reference" {
		t.Errorf("error = %v, want Protected Reference", body["error"])
	}
}

func TestRespond_Unexpected(t *testing.T) {
	w, body := respond(t, errors.New("boom"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body["error"] != "An unexpected error occurred" {
		t.Errorf("error = %v, want generic message", body["error"])
	}
	if body["detail"] != "boom" {
		t.Errorf("detail = %v, want boom", body["detail"])
	}
}

func TestWrappedErrors_PreserveUnderlying(t *testing.T) {
	underlying := errors.New("bad email")
	wrapped := Validation(fmt.Errorf("supplier: %w", underlying))

	if !errors.Is(wrapped, ErrValidation) {
		t.Error("expected wrapped error to match ErrValidation")
	}
	if !errors.Is(wrapped, underlying) {
		t.Error("expected wrapped error to preserve the underlying error")
	}
}

func TestWrapNil(t *testing.T) {
	if Validation(nil) != nil {
		t.Error("Validation(nil) should be nil")
	}
	if NotFound(nil) != nil {
		t.Error("NotFound(nil) should be nil")
	}
	if Protected(nil) != nil {
		t.Error("Protected(nil) should be nil")
	}
}
