package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
)

const (
	// MaxBodySize caps request bodies; identifiers are far shorter.
	MaxBodySize = 64 << 10

	RequestIDHeader = "X-Request-Id"
)

var (
	requests = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "http_requests_total",
		Help:      "Number of handled http requests, by route and status code",
	}, []string{"route", "code"})

	requestDuration = custompromauto.Auto().NewHistogramVec(prometheus.HistogramOpts{
		Namespace: custompromauto.Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Http request latency, by route",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"route"})

	wildcardPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(?:\.\.\.)?\}`)
)

// RegisterFunc registers handler on mux under "method pattern". The request struct is decoded from the
// JSON body, then every path wildcard is copied into the field whose json tag has the wildcard's name.
// Errors of type *Err are served with their status code, any other error as 500, and a panic as 502.
func RegisterFunc[Req, Resp any](
	logger *logrus.Logger,
	mux *http.ServeMux,
	method, pattern string,
	handler func(ctx context.Context, req *Req) (*Resp, error),
) {
	route := method + " " + pattern
	var wildcards []string
	for m := range slices.Values(wildcardPattern.FindAllStringSubmatch(pattern, -1)) {
		wildcards = append(wildcards, m[1])
	}

	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set(RequestIDHeader, requestID)
		logger := logger.WithContext(r.Context()).WithFields(logrus.Fields{
			"route":      route,
			"request_id": requestID,
		})

		status := http.StatusOK
		defer func() {
			if p := recover(); p != nil {
				logger.WithField("panic", p).Error("Handler panicked")
				status = http.StatusBadGateway
				writeJSON(logger, w, status, &Err{Message: "analysis failed, please retry later", StatusCode: status})
			}
			requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}()

		req := new(Req)
		err := decodeRequest(w, r, wildcards, req)
		if err != nil {
			logger.WithError(err).Warn("Could not decode request")
			status = http.StatusBadRequest
			writeJSON(logger, w, status, &Err{Message: "Malformed request body", StatusCode: status})
			return
		}

		resp, err := handler(r.Context(), req)
		if err != nil {
			restErr := &Err{}
			if !errors.As(err, &restErr) {
				logger.WithError(err).Error("Handler failed with an unexpected error")
				restErr = &Err{Message: "internal server error", StatusCode: http.StatusInternalServerError}
			}
			status = restErr.StatusCode
			writeJSON(logger, w, status, restErr)
			return
		}

		writeJSON(logger, w, status, resp)
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, wildcards []string, req any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return err
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, req)
		if err != nil {
			return err
		}
	}

	if len(wildcards) == 0 {
		return nil
	}
	values := make(map[string]string, len(wildcards))
	for name := range slices.Values(wildcards) {
		values[name] = r.PathValue(name)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, req)
}

func writeJSON(logger *logrus.Entry, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.WithError(err).Warn("Could not write response")
	}
}
