package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// User represents an account in the user directory.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsAdmin     bool       `json:"is_admin"`
	IsDisabled  bool       `json:"is_disabled"`
	Created     time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// UserList is a page of Users.
type UserList struct {
	Items    []User `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// UserSelector optionally narrows a user listing.
type UserSelector struct {
	// Search matches against user names and email addresses.
	Search string
	// IsAdmin, when non-nil, restricts results by admin status.
	IsAdmin *bool
	// IsDisabled, when non-nil, restricts results by disabled status.
	IsDisabled *bool
}

// ListOptions page through a listing.
type ListOptions struct {
	Page     int
	PageSize int
}

// UsersClient is the specialized client for the user directory.
type UsersClient interface {
	List(context.Context, UserSelector, ListOptions) (UserList, error)
	Get(context.Context, string) (User, error)
	// Disable locks an account out, recording the operator's reason.
	Disable(ctx context.Context, id string, reason string) error
	// Enable restores a previously disabled account.
	Enable(ctx context.Context, id string) error
	// SetAdmin promotes or demotes an account.
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	// Delete permanently removes an account.
	Delete(ctx context.Context, id string) error
}

type usersClient struct {
	*baseClient
}

// NewUsersClient returns a specialized client for the user directory.
func NewUsersClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) UsersClient {
	return &usersClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (u *usersClient) List(
	ctx context.Context,
	selector UserSelector,
	opts ListOptions,
) (UserList, error) {
	queryParams := map[string]string{}
	if opts.Page > 0 {
		queryParams["page"] = strconv.Itoa(opts.Page)
	}
	if opts.PageSize > 0 {
		queryParams["page_size"] = strconv.Itoa(opts.PageSize)
	}
	if selector.Search != "" {
		queryParams["search"] = selector.Search
	}
	if selector.IsAdmin != nil {
		queryParams["is_admin"] = strconv.FormatBool(*selector.IsAdmin)
	}
	if selector.IsDisabled != nil {
		queryParams["is_disabled"] = strconv.FormatBool(*selector.IsDisabled)
	}
	userList := UserList{}
	return userList, u.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "admin/users",
			queryParams: queryParams,
			authHeaders: u.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &userList,
		},
	)
}

func (u *usersClient) Get(ctx context.Context, id string) (User, error) {
	user := User{}
	return user, u.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        fmt.Sprintf("admin/users/%s", id),
			authHeaders: u.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &user,
		},
	)
}

func (u *usersClient) Disable(
	ctx context.Context,
	id string,
	reason string,
) error {
	return u.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        fmt.Sprintf("admin/users/%s/disable", id),
			authHeaders: u.bearerTokenAuthHeaders(),
			reqBodyObj: struct {
				Reason string `json:"reason"`
			}{Reason: reason},
			successCode: http.StatusOK,
		},
	)
}

func (u *usersClient) Enable(ctx context.Context, id string) error {
	return u.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        fmt.Sprintf("admin/users/%s/enable", id),
			authHeaders: u.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
		},
	)
}

func (u *usersClient) SetAdmin(
	ctx context.Context,
	id string,
	isAdmin bool,
) error {
	return u.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPatch,
			path:        fmt.Sprintf("admin/users/%s/admin-status", id),
			authHeaders: u.bearerTokenAuthHeaders(),
			reqBodyObj: struct {
				IsAdmin bool `json:"is_admin"`
			}{IsAdmin: isAdmin},
			successCode: http.StatusOK,
		},
	)
}

func (u *usersClient) Delete(ctx context.Context, id string) error {
	return u.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodDelete,
			path:        fmt.Sprintf("admin/users/%s", id),
			authHeaders: u.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
		},
	)
}
