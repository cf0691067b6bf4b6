package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	Created(rec, map[string]string{"id": "LA-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, map[string]interface{}{"id": "LA-1"}, body.Data)
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()

	Fail(rec, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "business_rule_violation",
		Message: "Item ITEM-1 is not available for leasing",
		Code:    "ITEM_UNAVAILABLE",
		Rule:    "item_availability",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "ITEM_UNAVAILABLE", body.Code)
	assert.Equal(t, "item_availability", body.Rule)
	assert.Empty(t, body.Field)
	assert.False(t, body.Timestamp.IsZero())
}

func TestError(t *testing.T) {
	tests := []struct {
		name      string
		write     func(w http.ResponseWriter)
		wantCode  int
		wantError string
	}{
		{
			name:      "bad request with cause",
			write:     func(w http.ResponseWriter) { BadRequest(w, "invalid body", errors.New("unexpected EOF")) },
			wantCode:  http.StatusBadRequest,
			wantError: "unexpected EOF",
		},
		{
			name:      "not found",
			write:     func(w http.ResponseWriter) { NotFound(w, "agreement not found") },
			wantCode:  http.StatusNotFound,
			wantError: "Not Found",
		},
		{
			name:      "internal error hides cause",
			write:     func(w http.ResponseWriter) { InternalServerError(w, "internal error") },
			wantCode:  http.StatusInternalServerError,
			wantError: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestIDMiddleware(LoggingMiddleware(zap.New(core))(next))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	requestID := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, requestID, fields["request_id"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/agreements", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
