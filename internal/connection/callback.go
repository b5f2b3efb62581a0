package connection

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"crosspost/internal/api"
	"crosspost/internal/notify"
)

// Result is the terminal state of an OAuth connect attempt, recovered
// from the redirect-back query parameters.
type Result struct {
	Platform api.Platform
	OK       bool
	Message  string
}

// StatusText renders the result the way the dashboard showed it.
func (r Result) StatusText() string {
	if r.OK {
		return fmt.Sprintf("%s connected successfully!", r.Platform.DisplayName())
	}
	msg := r.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("%s connection failed: %s", r.Platform.DisplayName(), msg)
}

func (r Result) Severity() notify.Severity {
	if r.OK {
		return notify.SeveritySuccess
	}
	return notify.SeverityError
}

// Listener is a short-lived local HTTP server that stands in for the
// dashboard URL the backend redirects to after the OAuth flow. It
// consumes the ?{platform}=success / ?{platform}=error&message=X
// parameters exactly once and then shuts down, so a refresh or repeat
// visit cannot re-trigger the message.
type Listener struct {
	platform api.Platform
	ln       net.Listener
	srv      *http.Server
	results  chan Result
}

// Listen binds the callback address. The address must match the
// redirect URL the backend is configured with.
func Listen(addr string, platform api.Platform) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	l := &Listener{
		platform: platform,
		ln:       ln,
		results:  make(chan Result, 1),
	}
	l.srv = &http.Server{
		Handler:      http.HandlerFunc(l.handle),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go l.srv.Serve(ln)
	return l, nil
}

// URL returns the address the browser will be redirected to.
func (l *Listener) URL() string {
	return "http://" + l.ln.Addr().String()
}

func (l *Listener) handle(w http.ResponseWriter, r *http.Request) {
	marker := r.URL.Query().Get(string(l.platform))
	if marker == "" {
		// Stray request (favicon, refresh after consumption).
		http.Error(w, "no pending connection", http.StatusNotFound)
		return
	}

	result := Result{
		Platform: l.platform,
		OK:       marker == "success",
		Message:  r.URL.Query().Get("message"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><p>%s</p><p>You can close this tab and return to the terminal.</p></body></html>", result.StatusText())

	select {
	case l.results <- result:
	default:
		// Already consumed once; later hits only get the page.
	}
}

// Wait blocks until the redirect arrives or the context ends, then
// shuts the server down either way.
func (l *Listener) Wait(ctx context.Context) (Result, error) {
	defer l.Close()

	select {
	case result := <-l.results:
		return result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (l *Listener) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.srv.Shutdown(shutdownCtx)
}
