package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// bodies bigger than this are closed without draining
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest consumes whatever the handler left unread, so the
// keep-alive connection can be reused, and closes the body.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			if _, err := io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes)); err != nil {
				log.Tracef("drain request body [%s]: %s", r.URL.Path, err)
			}
			_ = r.Body.Close()
		})
	}
}
