package api

// Client is the general interface for the Rekapo admin API. It does little
// more than expose functions for obtaining more specialized clients for
// different areas of concern, like authentication or user management.
type Client interface {
	// Auth returns a specialized client for authentication.
	Auth() AuthClient
	// Users returns a specialized client for the user directory.
	Users() UsersClient
	// Sessions returns a specialized client for the session directory.
	Sessions() SessionsClient
	// System returns a specialized client for system-level queries.
	System() SystemClient
}

type client struct {
	// authClient is a specialized client for authentication.
	authClient AuthClient
	// usersClient is a specialized client for the user directory.
	usersClient UsersClient
	// sessionsClient is a specialized client for the session directory.
	sessionsClient SessionsClient
	// systemClient is a specialized client for system-level queries.
	systemClient SystemClient
}

// NewClient returns a Rekapo admin API client.
func NewClient(apiAddress, apiToken string, allowInsecure bool) Client {
	return &client{
		authClient:     NewAuthClient(apiAddress, apiToken, allowInsecure),
		usersClient:    NewUsersClient(apiAddress, apiToken, allowInsecure),
		sessionsClient: NewSessionsClient(apiAddress, apiToken, allowInsecure),
		systemClient:   NewSystemClient(apiAddress, apiToken, allowInsecure),
	}
}

func (c *client) Auth() AuthClient {
	return c.authClient
}

func (c *client) Users() UsersClient {
	return c.usersClient
}

func (c *client) Sessions() SessionsClient {
	return c.sessionsClient
}

func (c *client) System() SystemClient {
	return c.systemClient
}
