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

func TestNewUsersClient(t *testing.T) {
	client := NewUsersClient(
		testAPIAddress,
		testAPIToken,
		testClientAllowInsecure,
	)
	require.IsType(t, &usersClient{}, client)
	require.Equal(t, testAPIAddress, client.(*usersClient).apiAddress)
	require.Equal(t, testAPIToken, client.(*usersClient).apiToken)
	require.NotNil(t, client.(*usersClient).httpClient)
}

func TestUsersClientList(t *testing.T) {
	adminOnly := true
	testUserList := UserList{
		Items: []User{
			{ID: "u-1", Email: "a@example.com", IsAdmin: true},
		},
		Total:    1,
		Page:     2,
		PageSize: 20,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/admin/users", r.URL.Path)
				require.Contains(
					t,
					r.Header.Get("Authorization"),
					"Bearer",
				)
				require.Equal(t, "2", r.URL.Query().Get("page"))
				require.Equal(t, "20", r.URL.Query().Get("page_size"))
				require.Equal(t, "smith", r.URL.Query().Get("search"))
				require.Equal(t, "true", r.URL.Query().Get("is_admin"))
				require.Empty(t, r.URL.Query().Get("is_disabled"))
				bodyBytes, err := json.Marshal(testUserList)
				require.NoError(t, err)
				fmt.Fprintln(w, string(bodyBytes))
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	users, err := client.List(
		context.Background(),
		UserSelector{
			Search:  "smith",
			IsAdmin: &adminOnly,
		},
		ListOptions{
			Page:     2,
			PageSize: 20,
		},
	)
	require.NoError(t, err)
	require.Equal(t, testUserList, users)
}

func TestUsersClientGet(t *testing.T) {
	testUser := User{
		ID:    "u-42",
		Email: "operator@example.com",
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/admin/users/u-42", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := json.Marshal(testUser)
				require.NoError(t, err)
				fmt.Fprintln(w, string(bodyBytes))
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	user, err := client.Get(context.Background(), "u-42")
	require.NoError(t, err)
	require.Equal(t, testUser, user)
}

func TestUsersClientDisable(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/admin/users/u-42/disable", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				body := struct {
					Reason string `json:"reason"`
				}{}
				require.NoError(
					t,
					json.NewDecoder(r.Body).Decode(&body),
				)
				require.Equal(t, "policy violation", body.Reason)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	err := client.Disable(context.Background(), "u-42", "policy violation")
	require.NoError(t, err)
}

func TestUsersClientEnable(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/admin/users/u-42/enable", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	err := client.Enable(context.Background(), "u-42")
	require.NoError(t, err)
}

func TestUsersClientSetAdmin(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPatch, r.Method)
				require.Equal(
					t,
					"/admin/users/u-42/admin-status",
					r.URL.Path,
				)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				body := struct {
					IsAdmin bool `json:"is_admin"`
				}{}
				require.NoError(
					t,
					json.NewDecoder(r.Body).Decode(&body),
				)
				require.True(t, body.IsAdmin)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	err := client.SetAdmin(context.Background(), "u-42", true)
	require.NoError(t, err)
}

func TestUsersClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/admin/users/u-42", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	err := client.Delete(context.Background(), "u-42")
	require.NoError(t, err)
}

func TestUsersClientNotFound(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintln(w, `{"detail": "user u-99 not found"}`)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, testAPIToken, testClientAllowInsecure)
	_, err := client.Get(context.Background(), "u-99")
	require.Error(t, err)
	require.IsType(t, &ErrNotFound{}, err)
}
