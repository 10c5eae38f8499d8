package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DirectorySession represents a server-side session in the session
// directory. It is distinct from the client's own authentication session.
type DirectorySession struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Device     string     `json:"device"`
	Created    time.Time  `json:"created_at"`
	LastActive *time.Time `json:"last_active_at,omitempty"`
}

// DirectorySessionList is a listing of DirectorySessions.
type DirectorySessionList struct {
	Items []DirectorySession `json:"items"`
	Total int                `json:"total"`
}

// DirectorySessionSelector optionally narrows a session listing.
type DirectorySessionSelector struct {
	// Search matches against session user IDs and device descriptions.
	Search string
}

// SessionsClient is the specialized client for the session directory.
type SessionsClient interface {
	List(
		context.Context,
		DirectorySessionSelector,
	) (DirectorySessionList, error)
	// GetMetadata retrieves the opaque metadata record attached to a session.
	GetMetadata(ctx context.Context, id string) (string, error)
	// Delete revokes a session server-side.
	Delete(ctx context.Context, id string) error
}

type sessionsClient struct {
	*baseClient
}

// NewSessionsClient returns a specialized client for the session directory.
func NewSessionsClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) SessionsClient {
	return &sessionsClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (s *sessionsClient) List(
	ctx context.Context,
	selector DirectorySessionSelector,
) (DirectorySessionList, error) {
	queryParams := map[string]string{}
	if selector.Search != "" {
		queryParams["search"] = selector.Search
	}
	sessionList := DirectorySessionList{}
	return sessionList, s.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "admin/sessions",
			queryParams: queryParams,
			authHeaders: s.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &sessionList,
		},
	)
}

func (s *sessionsClient) GetMetadata(
	ctx context.Context,
	id string,
) (string, error) {
	metadata := struct {
		Metadata string `json:"metadata"`
	}{}
	return metadata.Metadata, s.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        fmt.Sprintf("admin/sessions/%s/metadata", id),
			authHeaders: s.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &metadata,
		},
	)
}

func (s *sessionsClient) Delete(ctx context.Context, id string) error {
	return s.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodDelete,
			path:        fmt.Sprintf("admin/sessions/%s", id),
			authHeaders: s.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
		},
	)
}
