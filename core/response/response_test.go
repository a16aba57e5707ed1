package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cancelkit/core/response"
)

func TestString(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, response.String("READY")(w, r))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, response.JSONWithStatus(map[string]string{"ok": "yes"}, http.StatusCreated)(w, r))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, w.Body.String())
}

func TestJSONNoContent(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, response.JSONWithStatus(nil, http.StatusNoContent)(w, r))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorPassthrough(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	sentinel := errors.New("boom")
	assert.ErrorIs(t, response.Error(sentinel)(w, r), sentinel)
	assert.Empty(t, w.Body.String())
}

func TestRequestTimeoutShape(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, response.RequestTimeout("timeout:5000")(w, r))
	assert.Equal(t, http.StatusRequestTimeout, w.Code)

	var body struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Error      string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusRequestTimeout, body.StatusCode)
	assert.Equal(t, "timeout:5000", body.Message)
	assert.Equal(t, "Request Timeout", body.Error)
}

func TestRequestTimeoutDefaultMessage(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, response.RequestTimeout("")(w, r))
	assert.Contains(t, w.Body.String(), "Request Timeout")
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := response.ErrRequestTimeout.WithMessage("too slow")
	assert.Equal(t, http.StatusRequestTimeout, err.StatusCode())
	assert.Equal(t, "too slow", err.Error())

	withCause := response.ErrServiceUnavailable.WithError(errors.New("db down"))
	assert.Equal(t, "db down", withCause.Details["cause"])
}
