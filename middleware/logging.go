package middleware

import (
    "log"
    "net/http"
    "time"
)

func LoggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        // Capture the status code written by the handler
        wrw := &responseWriter{
            ResponseWriter: w,
            status:         http.StatusOK,
        }

        next.ServeHTTP(wrw, r)

        log.Printf(
            "%s - %s %s%s %d %v",
            r.RemoteAddr,
            r.Method,
            r.URL.Path,
            queryFragment(r),
            wrw.status,
            time.Since(start),
        )
    })
}

func queryFragment(r *http.Request) string {
    if r.URL.RawQuery == "" {
        return ""
    }
    return "?" + r.URL.RawQuery
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}
