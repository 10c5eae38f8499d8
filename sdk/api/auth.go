package api

import (
	"context"
	"net/http"
)

// Identity is the structured result of verifying a bearer token: the stable
// identifier, and a few display attributes, of the operator the token was
// issued to.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// AuthDetails encapsulates what a client needs to begin authentication: a
// URL, issued by the identity backend, that must be visited in a web browser
// to complete the third-party identity provider handoff.
type AuthDetails struct {
	AuthURL string `json:"auth_url"`
}

// AuthClient is the specialized client for the identity backend's
// authentication endpoints.
type AuthClient interface {
	// BeginLogin requests a provider redirect target from the backend. It
	// never mutates any client-side session state.
	BeginLogin(context.Context) (AuthDetails, error)
	// VerifyToken presents the specified token to the backend for validation
	// and identity resolution. An ErrAuthentication result means the token was
	// explicitly rejected; any other error is a transport failure of
	// indeterminate meaning.
	VerifyToken(ctx context.Context, token string) (Identity, error)
	// EndSession requests best-effort server-side invalidation of the session
	// associated with the client's own token.
	EndSession(context.Context) error
}

type authClient struct {
	*baseClient
}

// NewAuthClient returns a specialized client for the identity backend's
// authentication endpoints.
func NewAuthClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) AuthClient {
	return &authClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (a *authClient) BeginLogin(ctx context.Context) (AuthDetails, error) {
	authDetails := AuthDetails{}
	return authDetails, a.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "admin/auth/login",
			successCode: http.StatusOK,
			respObj:     &authDetails,
		},
	)
}

func (a *authClient) VerifyToken(
	ctx context.Context,
	token string,
) (Identity, error) {
	verification := struct {
		User Identity `json:"user"`
	}{}
	return verification.User, a.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "admin/auth/verify",
			authHeaders: bearerTokenAuthHeaders(token),
			successCode: http.StatusOK,
			respObj:     &verification,
		},
	)
}

func (a *authClient) EndSession(ctx context.Context) error {
	return a.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "admin/auth/logout",
			authHeaders: a.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
		},
	)
}
