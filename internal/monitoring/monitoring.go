package monitoring

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ProfilesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profiles_created_total",
		Help: "Total profiles successfully created",
	})

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Total posts successfully created",
	})

	FollowActions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "follow_actions_total",
		Help: "Total successful follow and unfollow actions",
	}, []string{"action"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ProfilesCreated)
	prometheus.MustRegister(PostsCreated)
	prometheus.MustRegister(FollowActions)
}

// StatusRecorder remembers the status code written by the wrapped handler.
type StatusRecorder struct {
	http.ResponseWriter
	StatusCode int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (rw *StatusRecorder) WriteHeader(code int) {
	rw.StatusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

var varPattern = regexp.MustCompile(`\{(\w+):[^/]*\}`)

// RouteName prefers the mux path template so IDs do not explode label cardinality.
// Variable patterns are dropped: "/posts/{id:[0-9]+}" is reported as "/posts/{id}".
func RouteName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return varPattern.ReplaceAllString(tpl, "{$1}")
		}
	}
	return r.URL.Path
}

func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := NewStatusRecorder(w)
		next.ServeHTTP(rw, r)

		RequestDuration.
			WithLabelValues(r.Method, RouteName(r), strconv.Itoa(rw.StatusCode)).
			Observe(time.Since(start).Seconds())
	})
}
