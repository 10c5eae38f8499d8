package api

import (
	"context"
	"net/http"
	"time"
)

// Statistics is a snapshot of system-wide figures reported by the statistics
// provider.
type Statistics struct {
	TotalUsers     int       `json:"total_users"`
	ActiveSessions int       `json:"active_sessions"`
	LastLogin      time.Time `json:"last_login"`
	SystemLoad     float64   `json:"system_load"`
}

// SystemClient is the specialized client for system-level queries.
type SystemClient interface {
	Stats(context.Context) (Statistics, error)
}

type systemClient struct {
	*baseClient
}

// NewSystemClient returns a specialized client for system-level queries.
func NewSystemClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) SystemClient {
	return &systemClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (s *systemClient) Stats(ctx context.Context) (Statistics, error) {
	stats := Statistics{}
	return stats, s.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "admin/statistics",
			authHeaders: s.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &stats,
		},
	)
}
