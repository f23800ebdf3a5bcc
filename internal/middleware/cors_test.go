package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsTestSetup() (http.Handler, *corsTestHandler) {
	next := &corsTestHandler{}
	return Cors()(next), next
}

func TestCors_allowedOrigin(t *testing.T) {
	handlerFunc, next := corsTestSetup()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/workouts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	handlerFunc.ServeHTTP(rr, req)

	assert.True(t, next.called)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCors_noOrigin(t *testing.T) {
	handlerFunc, next := corsTestSetup()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/workouts", nil)
	handlerFunc.ServeHTTP(rr, req)

	assert.True(t, next.called)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_forbiddenOrigin(t *testing.T) {
	handlerFunc, next := corsTestSetup()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/workouts", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("User-Agent", "definitely-not-curl")
	handlerFunc.ServeHTTP(rr, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

type corsTestHandler struct {
	called bool
}

func (h *corsTestHandler) ServeHTTP(http.ResponseWriter, *http.Request) {
	h.called = true
}
