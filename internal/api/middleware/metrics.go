package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/metrics"
)

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware записывает количество, длительность и статусы HTTP
// запросов. В лейбл path попадает шаблон роута mux (без подставленных ID),
// чтобы не раздувать кардинальность метрик.
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.IncHTTPInFlight(serviceName)
			defer m.DecHTTPInFlight(serviceName)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			m.IncHTTPRequest(serviceName, r.Method, path, strconv.Itoa(recorder.status))
			m.ObserveHTTPRequestDuration(serviceName, r.Method, path, time.Since(start).Seconds())
		})
	}
}
