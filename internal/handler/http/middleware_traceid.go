package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader carries the request trace identifier in both directions:
// clients may supply one, and the response always echoes the value that
// ended up in the logs.
const traceIDHeader = "X-Trace-ID"

// withTraceID tags every request with a trace identifier so that a single
// catalog operation (a route update, a bulk import) can be followed across
// all of its log lines. An incoming X-Trace-ID is reused as-is; otherwise a
// fresh UUID is generated.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
