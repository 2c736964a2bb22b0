package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	apperrors "pediacenter/pkg/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantCode   string
	}{
		{
			name:       "validation error keeps message and details",
			err:        apperrors.Validation("validation failed", map[string]any{"slot_start": "required"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "validation failed",
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "internal error hides cause",
			err:        apperrors.Internal("store exploded", errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
			wantCode:   apperrors.CodeInternal,
		},
		{
			name:       "plain error is internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
			wantCode:   apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteCreated(rec, map[string]string{"status": "booked"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"booked"}}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "valid", body: `{"name":"Ana"}`},
		{name: "empty", body: ``, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown field", body: `{"nickname":"A"}`, wantCode: apperrors.CodeInvalidInput},
		{name: "trailing object", body: `{"name":"A"}{"name":"B"}`, wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSON(req, &dst)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ana", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.AsAppError(err).Code)
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a very long name indeed"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 5)

	var dst map[string]any
	err := DecodeJSON(req, &dst)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePayloadTooLarge, apperrors.AsAppError(err).Code)
}
