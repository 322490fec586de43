package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-viewer/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("error envelopes carry code, message and RFC3339 timestamp", prop.ForAll(
		func(statusCode int, message string) bool {
			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode || w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}
			if response.Error.Code != http.StatusText(statusCode) || response.Error.Message != message {
				return false
			}
			_, err := time.Parse(time.RFC3339, response.Error.Timestamp)
			return err == nil
		},
		gen.OneConstOf(
			http.StatusBadRequest,
			http.StatusUnprocessableEntity,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
		),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_WrappedDomainErrorsKeepTheirStatus(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("wrapping a catalog error does not change its status code", prop.ForAll(
		func(index int, context string) bool {
			sentinels := []struct {
				err    error
				status int
			}{
				{domain.ErrMalformedSort, http.StatusBadRequest},
				{domain.ErrUnknownField, http.StatusBadRequest},
				{domain.ErrUnsortableField, http.StatusBadRequest},
				{domain.ErrUnknownStatus, http.StatusBadRequest},
				{domain.ErrEmptyDataset, http.StatusUnprocessableEntity},
				{domain.ErrDataUnavailable, http.StatusBadGateway},
			}
			s := sentinels[index%len(sentinels)]

			return StatusForError(fmt.Errorf("%s: %w", context, s.err)) == s.status
		},
		gen.IntRange(0, 100),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestStatusForError_Unknown(t *testing.T) {
	if got := StatusForError(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", got)
	}
}

func TestRespondWithDomainError_HidesUpstreamDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()

	err := fmt.Errorf("%w: unable to get products from http://internal:9000: status 503", domain.ErrDataUnavailable)
	RespondWithDomainError(w, req, zap.NewNop(), err)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error.Message != "unable to get products" {
		t.Errorf("Unexpected message %q", response.Error.Message)
	}
}

func TestRespondWithDomainError_ShowsInputErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?sort_by=price", nil)
	w := httptest.NewRecorder()

	_, err := domain.ParseSortSpec("price")
	RespondWithDomainError(w, req, zap.NewNop(), err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var response ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Error.Message != err.Error() {
		t.Errorf("Expected message %q, got %q", err.Error(), response.Error.Message)
	}
}

func TestErrorHandlingMiddleware_RecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
}
