package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c := NewClient(testAPIAddress, testAPIToken, testClientAllowInsecure)
	require.IsType(t, &client{}, c)
	require.NotNil(t, c.(*client).authClient)
	require.Same(t, c.(*client).authClient, c.Auth())
	require.NotNil(t, c.(*client).usersClient)
	require.Same(t, c.(*client).usersClient, c.Users())
	require.NotNil(t, c.(*client).sessionsClient)
	require.Same(t, c.(*client).sessionsClient, c.Sessions())
	require.NotNil(t, c.(*client).systemClient)
	require.Same(t, c.(*client).systemClient, c.System())
}
