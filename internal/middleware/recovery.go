package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/mealplan/internal/telemetry/metrics"
	"github.com/2beens/mealplan/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PanicRecovery turns a handler panic into a 500 JSON response. The panic is
// logged with the request id and recorded on the request span.
// http.ErrAbortHandler is passed on so net/http can abort the connection.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}

				panicErr := fmt.Errorf("panic serving %s %s: %v", r.Method, routeTemplate(r), recovered)
				span := trace.SpanFromContext(r.Context())
				span.RecordError(panicErr)
				span.SetStatus(codes.Error, "panic")

				log.WithField("request_id", RequestIDFromContext(r.Context())).
					Errorf("%s\n%s", panicErr, debug.Stack())
				pkg.WriteError(w, panicErr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
