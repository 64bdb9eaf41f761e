package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

var testRegistry = NewRegistry("TEST")

var (
	codeMissing = testRegistry.Register("MISSING", TypeNotFound, http.StatusNotFound, "Thing not found")
	codeBroken  = testRegistry.Register("BROKEN", TypeExternal, http.StatusBadGateway, "Upstream broken")
)

func TestRegistryNew(t *testing.T) {
	err := testRegistry.New(codeMissing).WithDetail("id", "42")

	if err.Code != "TEST.MISSING" {
		t.Fatalf("unexpected code: %s", err.Code)
	}
	if err.Type != TypeNotFound || err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected type/status: %s/%d", err.Type, err.HTTPStatus)
	}
	if err.Details["id"] != "42" {
		t.Fatalf("detail not recorded: %v", err.Details)
	}
}

func TestErrorsIsMatchesCode(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", testRegistry.New(codeMissing))

	if !errors.Is(wrapped, testRegistry.New(codeMissing)) {
		t.Fatalf("expected errors.Is to match by code")
	}
	if errors.Is(wrapped, testRegistry.New(codeBroken)) {
		t.Fatalf("different codes must not match")
	}
	if !IsCode(wrapped, codeMissing) {
		t.Fatalf("expected IsCode to find code in chain")
	}
}

func TestWrapKeepsCode(t *testing.T) {
	cause := testRegistry.New(codeBroken)
	err := Wrap(cause, "failed to call upstream", TypeExternal)

	if err.Code != codeBroken {
		t.Fatalf("expected wrapped code to survive, got %s", err.Code)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if Wrap(nil, "noop", TypeInternal) != nil {
		t.Fatalf("wrapping nil must return nil")
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("bad input", TypeValidation))
	if !IsType(err, TypeValidation) {
		t.Fatalf("expected validation type")
	}
	if IsType(errors.New("plain"), TypeValidation) {
		t.Fatalf("plain errors have no type")
	}
}

func TestToHTTPResponse(t *testing.T) {
	body := testRegistry.New(codeMissing).WithDetails(map[string]any{"id": "7"}).ToHTTPResponse()
	if body["code"] != codeMissing {
		t.Fatalf("unexpected code in body: %v", body["code"])
	}
	if _, ok := body["details"]; !ok {
		t.Fatalf("expected details in body")
	}
}
