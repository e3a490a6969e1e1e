package recipeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

const (
	breakerTripAfter = 3
	breakerCooldown  = 30 * time.Second
)

// countsAsSuccess reports whether err leaves the breaker's failure count
// alone. The caller cancelling its own request says nothing about the API.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError
}

// newBreaker trips after consecutive transport failures or 5xx responses.
// A 4xx is the API answering normally and does not count against it, nor
// does a cancelled context.
func newBreaker(name string, log logrus.FieldLogger) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"component": "recipeapi",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Warn("circuit breaker state change")
		},
	})
}
