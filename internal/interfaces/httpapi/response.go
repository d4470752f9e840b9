package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-highlights/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type responseEnvelope struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data"`
	Error      string          `json:"error,omitempty"`
	Pagination *paginationMeta `json:"pagination,omitempty"`
	Filters    any             `json:"filters,omitempty"`
	Query      string          `json:"query,omitempty"`
}

type paginationMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// writeJSON renders the payload through a pooled buffer so a failed encode
// never leaves a half-written body on the wire.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"data":null,"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		Success: true,
		Data:    data,
	})
}

func writeListSuccess(ctx context.Context, w http.ResponseWriter, data any, pagination paginationMeta, filters any) {
	ctx, span := startSpan(ctx, "httpapi.writeListSuccess")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
		Filters:    filters,
	})
}

// writeError renders a failure envelope. emptyData keeps the data field
// shaped like the success payload would be, so clients can decode either
// outcome into one structure.
func writeError(ctx context.Context, w http.ResponseWriter, err error, emptyData any) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeJSON(ctx, w, mapErrorStatus(ctx, err), responseEnvelope{
		Success: false,
		Data:    emptyData,
		Error:   err.Error(),
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Success: false,
		Data:    nil,
		Error:   "internal server error",
	})
}

func mapErrorStatus(ctx context.Context, err error) int {
	ctx, span := startSpan(ctx, "httpapi.mapErrorStatus")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
