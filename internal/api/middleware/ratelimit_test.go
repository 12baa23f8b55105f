package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-ledger/internal/config"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newLimiterRequest(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	return req
}

func TestRateLimiterMiddleware_TokenBucket(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}, nil, logger)
	defer rl.Close()
	handler := rl.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newLimiterRequest("127.0.0.1:12345"))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newLimiterRequest("10.0.0.9:1"))
	assert.Equal(t, http.StatusOK, rec.Code, "other clients have their own bucket")
}

func TestRateLimiterMiddleware_Disabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1}, nil, logger)

	handler := rl.Middleware(okHandler)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newLimiterRequest("127.0.0.1:1"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterMiddleware_Redis(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	client, mock := redismock.NewClientMock()
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 2, Burst: 4}, client, logger)
	handler := rl.Middleware(okHandler)
	key := rateLimitKeyPrefix + "192.168.1.7"

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Second).SetVal(true)
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectIncr(key).SetVal(3)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newLimiterRequest("192.168.1.7:5555"))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiterMiddleware_RedisFailsOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	client, mock := redismock.NewClientMock()
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1}, client, logger)

	mock.ExpectIncr(rateLimitKeyPrefix + "192.168.1.7").SetErr(errors.New("connection refused"))

	rec := httptest.NewRecorder()
	rl.Middleware(okHandler).ServeHTTP(rec, newLimiterRequest("192.168.1.7:5555"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractIP(t *testing.T) {
	rl := &RateLimiterMiddleware{}

	req := newLimiterRequest("10.1.1.1:80")
	assert.Equal(t, "10.1.1.1", rl.extractIP(req))

	req.Header.Set("X-Real-IP", "10.2.2.2")
	assert.Equal(t, "10.2.2.2", rl.extractIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", rl.extractIP(req))

	req.Header.Set("X-Forwarded-For", "garbage")
	assert.Equal(t, "10.2.2.2", rl.extractIP(req))
}
