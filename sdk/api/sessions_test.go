package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSessionsClient(t *testing.T) {
	client := NewSessionsClient(
		testAPIAddress,
		testAPIToken,
		testClientAllowInsecure,
	)
	require.IsType(t, &sessionsClient{}, client)
	require.Equal(t, testAPIAddress, client.(*sessionsClient).apiAddress)
	require.Equal(t, testAPIToken, client.(*sessionsClient).apiToken)
	require.NotNil(t, client.(*sessionsClient).httpClient)
}

func TestSessionsClientList(t *testing.T) {
	testSessionList := DirectorySessionList{
		Items: []DirectorySession{
			{ID: "s-1", UserID: "u-42", Device: "Firefox on Linux"},
		},
		Total: 1,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/admin/sessions", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				require.Equal(t, "firefox", r.URL.Query().Get("search"))
				bodyBytes, err := json.Marshal(testSessionList)
				require.NoError(t, err)
				fmt.Fprintln(w, string(bodyBytes))
			},
		),
	)
	defer server.Close()
	client := NewSessionsClient(
		server.URL,
		testAPIToken,
		testClientAllowInsecure,
	)
	sessions, err := client.List(
		context.Background(),
		DirectorySessionSelector{Search: "firefox"},
	)
	require.NoError(t, err)
	require.Equal(t, testSessionList, sessions)
}

func TestSessionsClientGetMetadata(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/admin/sessions/s-1/metadata", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				fmt.Fprintln(w, `{"metadata": "ip=10.0.0.1"}`)
			},
		),
	)
	defer server.Close()
	client := NewSessionsClient(
		server.URL,
		testAPIToken,
		testClientAllowInsecure,
	)
	metadata, err := client.GetMetadata(context.Background(), "s-1")
	require.NoError(t, err)
	require.Equal(t, "ip=10.0.0.1", metadata)
}

func TestSessionsClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/admin/sessions/s-1", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
			},
		),
	)
	defer server.Close()
	client := NewSessionsClient(
		server.URL,
		testAPIToken,
		testClientAllowInsecure,
	)
	err := client.Delete(context.Background(), "s-1")
	require.NoError(t, err)
}
