package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, w.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, errors.New("bad news"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad news"}`, w.Body.String())
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantBody string
	}{
		{
			name:     "validation error echoed",
			code:     http.StatusBadRequest,
			err:      &entity.ValidationError{Field: "limit", Message: "limit must be between 1 and 100"},
			wantBody: "validation error on field 'limit': limit must be between 1 and 100",
		},
		{
			name:     "unknown category echoed",
			code:     http.StatusBadRequest,
			err:      &entity.ValidationError{Field: "category", Message: "unknown category: sports"},
			wantBody: "validation error on field 'category': unknown category: sports",
		},
		{
			name:     "internal detail masked",
			code:     http.StatusBadRequest,
			err:      errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantBody: "internal server error",
		},
		{
			name:     "5xx always masked",
			code:     http.StatusInternalServerError,
			err:      errors.New("limit must be between 1 and 100"),
			wantBody: "internal server error",
		},
		{
			name:     "rate limit message echoed",
			code:     http.StatusTooManyRequests,
			err:      errors.New("rate limit exceeded"),
			wantBody: "rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			assert.Equal(t, tt.code, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["error"])
		})
	}
}

func TestSafeError_NilError(t *testing.T) {
	w := httptest.NewRecorder()

	SafeError(w, http.StatusInternalServerError, nil)

	assert.Equal(t, http.StatusOK, w.Code) // recorder default, nothing written
	assert.Empty(t, w.Body.String())
}
