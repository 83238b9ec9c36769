package restapi

import (
	"fmt"
	"net/http"
)

const noStoreHeader = "no-cache, no-store, must-revalidate"

// CacheControlMiddleware stamps successful responses with a public max-age
// of durationSeconds. Non-2xx responses, and every response when the
// lifetime is zero, are marked uncacheable so intermediaries never pin an
// error or a stale health probe.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	successValue := noStoreHeader
	if durationSeconds > 0 {
		successValue = fmt.Sprintf("public, max-age=%d", durationSeconds)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, onSuccess: successValue}, r)
	})
}

// cacheControlWriter defers the Cache-Control decision until the status
// code is known.
type cacheControlWriter struct {
	http.ResponseWriter
	onSuccess string
	decided   bool
}

func (w *cacheControlWriter) WriteHeader(code int) {
	if !w.decided {
		w.decided = true
		value := noStoreHeader
		if code >= 200 && code < 300 {
			value = w.onSuccess
		}
		w.Header().Set("Cache-Control", value)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.decided {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
