package httpapi

import (
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	logMsgRequestServed = "http request served"
	logAttrMethod       = "method"
	logAttrPath         = "path"
	logAttrStatus       = "status"
	logAttrBytes        = "bytes"
	logAttrDurationMS   = "duration_ms"
)

// requestLogger logs one line per request at info level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger.InfoContext(r.Context(), logMsgRequestServed,
				logAttrMethod, r.Method,
				logAttrPath, r.URL.Path,
				logAttrStatus, status,
				logAttrBytes, ww.BytesWritten(),
				logAttrDurationMS, durationToMilliseconds(time.Since(start)),
				logAttrRequestID, middleware.GetReqID(r.Context()))
		})
	}
}

// resourceNames maps lower-cased top-level path segments to their registered spelling.
var resourceNames = map[string]string{
	"authors": "Authors",
	"books":   "Books",
}

// caseInsensitiveResources routes /authors, /BOOKS/{id} and other spellings to the registered routes.
// Only the routing path is rewritten, r.URL.Path stays as the client sent it.
func caseInsensitiveResources(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())

		path := r.URL.Path
		if rctx != nil && rctx.RoutePath != "" {
			path = rctx.RoutePath
		}

		segment, rest, hasRest := strings.Cut(strings.TrimPrefix(path, "/"), "/")

		if canonical, ok := resourceNames[strings.ToLower(segment)]; ok && canonical != segment {
			newPath := "/" + canonical
			if hasRest {
				newPath += "/" + rest
			}

			if rctx != nil {
				rctx.RoutePath = newPath
			} else {
				r.URL.Path = newPath
			}
		}

		next.ServeHTTP(w, r)
	})
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
