package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-highlights/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["success"].(bool); !got {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
	if _, ok := body["pagination"]; ok {
		t.Fatalf("did not expect pagination key without a list")
	}
}

func TestWriteListSuccess_IncludesPaginationAndFilters(t *testing.T) {
	rec := httptest.NewRecorder()
	writeListSuccess(context.Background(), rec, []string{"a"}, paginationMeta{
		Total:   12,
		Limit:   5,
		Offset:  0,
		HasMore: true,
	}, matchFiltersDTO{Status: "finished"})

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination object, got %v", body["pagination"])
	}
	if got, _ := pagination["total"].(float64); got != 12 {
		t.Fatalf("expected total=12, got %v", pagination["total"])
	}
	if got, _ := pagination["has_more"].(bool); !got {
		t.Fatalf("expected has_more=true, got %v", pagination["has_more"])
	}

	filters, ok := body["filters"].(map[string]any)
	if !ok {
		t.Fatalf("expected filters object, got %v", body["filters"])
	}
	if got, _ := filters["status"].(string); got != "finished" {
		t.Fatalf("expected status filter echoed, got %v", filters["status"])
	}
}

func TestWriteError_KeepsDataShape(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), []matchDTO{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["success"].(bool); got {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if _, ok := body["data"].([]any); !ok {
		t.Fatalf("expected empty list data, got %v", body["data"])
	}
	if got, _ := body["error"].(string); got == "" {
		t.Fatalf("expected error message, got %v", body["error"])
	}
}

func TestMapErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", usecase.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: x", usecase.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", usecase.ErrRateLimited), http.StatusTooManyRequests},
		{fmt.Errorf("%w: x", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: x", usecase.ErrMissingCredential), http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := mapErrorStatus(context.Background(), tc.err); got != tc.want {
			t.Fatalf("mapErrorStatus(%v)=%d want=%d", tc.err, got, tc.want)
		}
	}
}
