package guard

import (
	"github.com/pkg/errors"

	"github.com/michaelIldefonso/Rekapo-admin/internal/session"
)

// Decision is what a protected surface should do for the current navigation.
type Decision string

const (
	// DecisionWait instructs the surface to present a neutral busy state: a
	// transition is in flight, so neither content nor a redirect is
	// appropriate yet.
	DecisionWait Decision = "WAIT"
	// DecisionAdmit instructs the surface to present the protected content.
	DecisionAdmit Decision = "ADMIT"
	// DecisionLogin instructs the surface to route the operator to the login
	// entry point, discarding the originally requested destination.
	DecisionLogin Decision = "LOGIN"
)

// ErrLoginRequired is returned by Check when the operator must authenticate
// before proceeding.
var ErrLoginRequired = errors.New(
	"not logged in; please use `rekapo-admin login` to continue",
)

// Evaluate is a pure function of a session snapshot. Every protected surface
// consults it on every navigation; it holds no state of its own.
func Evaluate(snapshot session.Snapshot) Decision {
	switch {
	case snapshot.Loading:
		return DecisionWait
	case snapshot.Status == session.StatusAuthenticated:
		return DecisionAdmit
	default:
		return DecisionLogin
	}
}

// Check adapts Evaluate for imperative callers: it returns nil only when the
// protected operation may proceed.
func Check(snapshot session.Snapshot) error {
	switch Evaluate(snapshot) {
	case DecisionAdmit:
		return nil
	case DecisionWait:
		return session.ErrVerificationInProgress
	default:
		return ErrLoginRequired
	}
}
