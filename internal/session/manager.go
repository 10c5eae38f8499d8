package session

import (
	"context"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/michaelIldefonso/Rekapo-admin/internal/credentials"
	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

// Status represents where the client-side authentication session currently
// stands.
type Status string

const (
	// StatusUnauthenticated is the initial status and the resting status after
	// logout or a failed silent verification.
	StatusUnauthenticated Status = "UNAUTHENTICATED"
	// StatusVerifying indicates a transition is in flight. No other transition
	// may be requested until it settles.
	StatusVerifying Status = "VERIFYING"
	// StatusAuthenticated indicates the backend has verified the credential
	// and resolved an identity.
	StatusAuthenticated Status = "AUTHENTICATED"
	// StatusFailed indicates an explicit, operator-initiated transition
	// failed.
	StatusFailed Status = "FAILED"
)

// ErrVerificationInProgress is returned when a transition is requested while
// another one is still in flight. Callers are expected to treat this as a
// programming error rather than retry.
var ErrVerificationInProgress = errors.New(
	"another session transition is already in progress",
)

// errSuperseded marks a verification response that arrived after a newer
// attempt had already started.
var errSuperseded = errors.New("verification attempt superseded")

// Snapshot is a point-in-time copy of the session. Consumers observe the
// session exclusively through Snapshots; they never see raw transport
// failures in any other form than the Err field.
type Snapshot struct {
	Status   Status
	Identity *api.Identity
	Err      error
	Loading  bool
}

// Manager owns the client-side authentication session: the current status,
// the identity record when authenticated, and the stored credential, which no
// other component may write. It is constructed once at process start and
// passed to consumers explicitly.
type Manager struct {
	authClient api.AuthClient
	creds      credentials.Store

	mu       sync.Mutex
	status   Status
	identity *api.Identity
	err      error
	// attempt correlates in-flight verifications with the state machine. A
	// response is applied only if it carries the current attempt number, so a
	// stale verification can never clobber a newer one.
	attempt   uint64
	attemptID string
}

// NewManager returns a Manager in StatusUnauthenticated.
func NewManager(authClient api.AuthClient, creds credentials.Store) *Manager {
	return &Manager{
		authClient: authClient,
		creds:      creds,
		status:     StatusUnauthenticated,
	}
}

// Snapshot returns a point-in-time copy of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Status:   m.status,
		Identity: m.identity,
		Err:      m.err,
		Loading:  m.status == StatusVerifying,
	}
}

// Init establishes the session at process start. With no stored credential
// the session settles immediately in StatusUnauthenticated, without ever
// entering StatusVerifying-- "never logged in" is distinguishable from
// "checking." With one, the credential is verified silently: failure of any
// kind clears it and settles in StatusUnauthenticated without surfacing an
// error, so a stale token costs the operator nothing but a fresh login.
func (m *Manager) Init(ctx context.Context) error {
	token, ok := m.creds.Get()
	if !ok {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.status == StatusVerifying {
			return ErrVerificationInProgress
		}
		m.status = StatusUnauthenticated
		m.identity = nil
		return nil
	}

	attempt, err := m.begin()
	if err != nil {
		return err
	}
	identity, verifyErr := m.authClient.VerifyToken(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attempt != attempt || m.status != StatusVerifying {
		glog.Warningf(
			"session: discarded superseded verification response (attempt %s)",
			m.attemptID,
		)
		return nil
	}
	if verifyErr != nil {
		// Any verification failure, explicit rejection or transport failure
		// alike, discards the credential: a spurious re-login beats ever
		// admitting an unverified session.
		m.creds.Clear()
		m.status = StatusUnauthenticated
		m.identity = nil
		m.err = verifyErr
		glog.Warningf(
			"session: silent verification failed (attempt %s): %s",
			m.attemptID,
			verifyErr,
		)
		return nil
	}
	m.status = StatusAuthenticated
	m.identity = &identity
	m.err = nil
	return nil
}

// CompleteLogin exchanges a token delivered by the login callback for an
// authenticated session. The token is persisted before verification so a
// process restart mid-verification does not lose it; verification failure
// un-persists it, rests in StatusFailed, and returns the failure so the
// caller can route the operator back through login.
func (m *Manager) CompleteLogin(
	ctx context.Context,
	token string,
) (api.Identity, error) {
	attempt, err := m.begin()
	if err != nil {
		return api.Identity{}, err
	}
	m.creds.Set(token)

	type verification struct {
		identity api.Identity
		err      error
	}
	resultCh := make(chan verification, 1)
	go func() {
		identity, verifyErr := m.authClient.VerifyToken(ctx, token)
		resultCh <- verification{identity: identity, err: verifyErr}
	}()

	select {
	case <-ctx.Done():
		// The caller has moved on. The eventual response still routes through
		// applyVerification, where the attempt check discards it rather than
		// letting it clobber whatever attempt comes next.
		m.abandon(attempt)
		go func() {
			result := <-resultCh
			m.applyVerification(attempt, result.identity, result.err) // nolint: errcheck
		}()
		return api.Identity{}, ctx.Err()
	case result := <-resultCh:
		return m.applyVerification(attempt, result.identity, result.err)
	}
}

// Logout tears the session down local-first: server-side invalidation is
// attempted, but the credential and the in-memory session are cleared no
// matter what. A non-nil return reports a failed server-side invalidation
// that did not block the local teardown.
func (m *Manager) Logout(ctx context.Context) error {
	if _, err := m.begin(); err != nil {
		return err
	}
	endErr := m.authClient.EndSession(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds.Clear()
	m.status = StatusUnauthenticated
	m.identity = nil
	m.err = endErr
	if endErr != nil {
		glog.Warningf(
			"session: server-side invalidation failed (attempt %s): %s",
			m.attemptID,
			endErr,
		)
		return errors.Wrap(endErr, "error ending server-side session")
	}
	return nil
}

// begin marks entry into StatusVerifying and issues the attempt number that
// any resulting response must carry to be accepted. Entry into
// StatusVerifying is the lock on the logical protocol: a transition requested
// while another is in flight is rejected, never queued.
func (m *Manager) begin() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusVerifying {
		return 0, ErrVerificationInProgress
	}
	m.attempt++
	m.attemptID = uuid.NewV4().String()
	m.status = StatusVerifying
	m.identity = nil
	m.err = nil
	glog.V(1).Infof("session: transition started (attempt %s)", m.attemptID)
	return m.attempt, nil
}

// abandon rolls the machine back to StatusUnauthenticated if the specified
// attempt is still the one in flight. The attempt number itself is left
// current so the eventual response is recognizably stale.
func (m *Manager) abandon(attempt uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attempt != attempt || m.status != StatusVerifying {
		return
	}
	m.status = StatusUnauthenticated
	m.identity = nil
	glog.V(1).Infof("session: transition abandoned (attempt %s)", m.attemptID)
}

// applyVerification settles a verification attempt, provided the machine is
// still in the StatusVerifying that corresponds to it.
func (m *Manager) applyVerification(
	attempt uint64,
	identity api.Identity,
	verifyErr error,
) (api.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attempt != attempt || m.status != StatusVerifying {
		glog.Warningf(
			"session: discarded superseded verification response (attempt %s)",
			m.attemptID,
		)
		return api.Identity{}, errSuperseded
	}
	if verifyErr != nil {
		m.creds.Clear()
		m.status = StatusFailed
		m.identity = nil
		m.err = verifyErr
		return api.Identity{}, errors.Wrap(verifyErr, "error verifying token")
	}
	m.status = StatusAuthenticated
	m.identity = &identity
	m.err = nil
	return identity, nil
}
