package guard

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/michaelIldefonso/Rekapo-admin/internal/session"
	"github.com/michaelIldefonso/Rekapo-admin/sdk/api"
)

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot session.Snapshot
		expected Decision
	}{
		{
			name: "verifying",
			snapshot: session.Snapshot{
				Status:  session.StatusVerifying,
				Loading: true,
			},
			expected: DecisionWait,
		},
		{
			name: "authenticated",
			snapshot: session.Snapshot{
				Status:   session.StatusAuthenticated,
				Identity: &api.Identity{ID: "u-42"},
			},
			expected: DecisionAdmit,
		},
		{
			name: "unauthenticated",
			snapshot: session.Snapshot{
				Status: session.StatusUnauthenticated,
			},
			expected: DecisionLogin,
		},
		{
			name: "failed",
			snapshot: session.Snapshot{
				Status: session.StatusFailed,
				Err:    errors.New("verification failed"),
			},
			expected: DecisionLogin,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, Evaluate(testCase.snapshot))
		})
	}
}

func TestCheck(t *testing.T) {
	require.NoError(
		t,
		Check(
			session.Snapshot{
				Status:   session.StatusAuthenticated,
				Identity: &api.Identity{ID: "u-42"},
			},
		),
	)
	require.ErrorIs(
		t,
		Check(session.Snapshot{Status: session.StatusUnauthenticated}),
		ErrLoginRequired,
	)
	require.ErrorIs(
		t,
		Check(
			session.Snapshot{
				Status:  session.StatusVerifying,
				Loading: true,
			},
		),
		session.ErrVerificationInProgress,
	)
}
