package handlers

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"br.com.tucano.courier/internal/auth"
	"br.com.tucano.courier/internal/model"
)

// limiterStore keeps one token bucket per sending account.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[model.AccountID]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newLimiterStore(perSecond float64, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[model.AccountID]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

func (s *limiterStore) get(id model.AccountID) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	limiter, ok := s.limiters[id]
	if !ok {
		limiter = rate.NewLimiter(s.rate, s.burst)
		s.limiters[id] = limiter
	}
	return limiter
}

// SendRateLimit throttles the send path per account. Reads stay unthrottled.
func SendRateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	store := newLimiterStore(perSecond, burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.get(auth.CallerID(c)).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "send rate exceeded")
			}
			return next(c)
		}
	}
}
