package middleware

import (
	"errors"
	"lankaride/config"
	otelMocks "lankaride/infras/otel/mocks"
	cacheMocks "lankaride/shared/cache/mocks"
	"lankaride/shared/constant"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	tests := []struct {
		name       string
		path       string
		upgrade    string
		setupMock  func(cache *cacheMocks.MockRedisCache)
		wantStatus int
		wantLeft   string
	}{
		{
			name: "within window",
			path: "/api/v1/vehicles",
			setupMock: func(cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7:kandy-app", 60).Return(int64(1), nil)
			},
			wantStatus: http.StatusOK,
			wantLeft:   "1",
		},
		{
			name: "over the limit",
			path: "/api/v1/vehicles",
			setupMock: func(cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)
			},
			wantStatus: http.StatusTooManyRequests,
			wantLeft:   "0",
		},
		{
			name: "cache down lets the request through",
			path: "/api/v1/vehicles",
			setupMock: func(cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("redis down"))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "health probe is exempt",
			path:       "/api/v1/health",
			setupMock:  func(_ *cacheMocks.MockRedisCache) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "websocket upgrade is exempt",
			path:       "/api/v1/chat/ws",
			upgrade:    "websocket",
			setupMock:  func(_ *cacheMocks.MockRedisCache) {},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(cache)

			app := &appMiddleware{otel: otelMocks.NewOtel(), config: cfg, cache: cache}
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.RemoteAddr = "10.0.0.7:51234"
			req.Header.Set(constant.RequestHeaderUserAgent, "kandy-app")
			if tt.upgrade != "" {
				req.Header.Set(constant.RequestHeaderUpgrade, tt.upgrade)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLeft, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))

			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRetryAfter))
			}
		})
	}
}
