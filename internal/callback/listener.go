package callback

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/michaelIldefonso/Rekapo-admin/internal/session"
	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

// Config encapsulates listener configuration.
type Config struct {
	// Address is the address the listener binds to. It must match the
	// redirect target the identity backend has registered for this client.
	Address string
	// ConsoleURL is where the browser is sent after a successful login.
	ConsoleURL string
	// LoginURL is where the browser is sent when the callback carries an
	// error code or the login could not be completed.
	LoginURL string
}

// Result is the outcome of one redirect callback, delivered exactly once to
// whoever is waiting on the login flow.
type Result struct {
	Identity api.Identity
	Err      error
}

// ErrMalformedCallback indicates the return navigation carried neither a
// token nor an error code. The operator can simply retry login, so this is
// routed back to the login entry point without ceremony.
var ErrMalformedCallback = errors.New(
	"callback carried neither a token nor an error code",
)

// ProviderError indicates the identity provider refused authentication. Code
// is carried verbatim from the provider.
type ProviderError struct {
	Code string
}

func (p *ProviderError) Error() string {
	return fmt.Sprintf("identity provider returned error code %q", p.Code)
}

// Listener is a one-shot HTTP listener for the identity backend's return
// redirect. It feeds the extracted result to the session manager, sends the
// browser onward, and reports the outcome over a channel.
type Listener struct {
	sessions *session.Manager
	config   Config
	server   *http.Server
	resultCh chan Result
	consumed int32
}

// NewListener returns a Listener that completes logins against the specified
// session manager.
func NewListener(sessions *session.Manager, config Config) *Listener {
	l := &Listener{
		sessions: sessions,
		config:   config,
		resultCh: make(chan Result, 1),
	}
	router := mux.NewRouter()
	router.HandleFunc("/auth/callback", l.handleCallback).
		Methods(http.MethodGet)
	l.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return l
}

// Start binds the listener and begins serving in the background. It returns
// the callback URL the identity backend should redirect the browser to.
func (l *Listener) Start() (string, error) {
	listener, err := net.Listen("tcp", l.config.Address)
	if err != nil {
		return "", errors.Wrapf(
			err,
			"error listening on %s",
			l.config.Address,
		)
	}
	go func() {
		if err := l.server.Serve(listener); err != nil &&
			err != http.ErrServerClosed {
			glog.Errorf("callback: server error: %s", err)
		}
	}()
	return fmt.Sprintf("http://%s/auth/callback", listener.Addr()), nil
}

// Result returns the channel on which the one-shot outcome is delivered.
func (l *Listener) Result() <-chan Result {
	return l.resultCh
}

// Shutdown stops the listener.
func (l *Listener) Shutdown(ctx context.Context) error {
	return l.server.Shutdown(ctx)
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	if !atomic.CompareAndSwapInt32(&l.consumed, 0, 1) {
		// The callback is consumed exactly once; repeat navigations go back
		// to the login entry point without reprocessing.
		http.Redirect(w, r, l.config.LoginURL, http.StatusFound)
		return
	}

	query := r.URL.Query()

	if code := query.Get("error"); code != "" {
		// The provider refused. Carry its code verbatim; verification is not
		// attempted.
		glog.V(1).Infof("callback: provider returned error code %q", code)
		http.Redirect(
			w,
			r,
			loginRedirect(l.config.LoginURL, code),
			http.StatusFound,
		)
		l.resultCh <- Result{Err: &ProviderError{Code: code}}
		return
	}

	token := query.Get("token")
	if token == "" {
		glog.V(1).Info("callback: malformed return navigation")
		http.Redirect(w, r, l.config.LoginURL, http.StatusFound)
		l.resultCh <- Result{Err: ErrMalformedCallback}
		return
	}

	identity, err := l.sessions.CompleteLogin(r.Context(), token)
	if err != nil {
		glog.Warningf("callback: login could not be completed: %s", err)
		http.Redirect(
			w,
			r,
			loginRedirect(l.config.LoginURL, "auth_failed"),
			http.StatusFound,
		)
		l.resultCh <- Result{Err: errors.Wrap(err, "error completing login")}
		return
	}

	http.Redirect(w, r, l.config.ConsoleURL, http.StatusFound)
	l.resultCh <- Result{Identity: identity}
}

// loginRedirect attaches the specified error code to the login URL's query,
// preserving any query the URL already carries.
func loginRedirect(loginURL, code string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()
	return u.String()
}
