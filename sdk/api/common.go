package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// defaultTimeout bounds every API call so that a request that never resolves
// eventually fails instead of suspending the caller indefinitely.
const defaultTimeout = 15 * time.Second

// outboundRequest models an outbound API call.
type outboundRequest struct {
	// method specifies the HTTP method to be used.
	method string
	// path specifies a path (relative to the root of the API) to be used.
	path string
	// queryParams optionally specifies any URL query parameters to be used.
	queryParams map[string]string
	// authHeaders optionally specifies any authentication headers to be used.
	authHeaders map[string]string
	// reqBodyObj optionally provides an object that can be marshaled to create
	// the body of the HTTP request.
	reqBodyObj interface{}
	// successCode specifies what HTTP response code should indicate a
	// successful API call.
	successCode int
	// respObj optionally provides an object into which the HTTP response body
	// can be unmarshaled.
	respObj interface{}
}

// baseClient provides "API machinery" used by all the specialized API
// clients. Its various functions remove the tedium from common API-related
// operations like managing authentication headers, encoding request bodies,
// interpreting response codes, and decoding response bodies.
type baseClient struct {
	apiAddress string
	apiToken   string
	httpClient *http.Client
}

func newBaseClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) *baseClient {
	return &baseClient{
		apiAddress: apiAddress,
		apiToken:   apiToken,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: allowInsecure, // nolint: gosec
				},
			},
		},
	}
}

// bearerTokenAuthHeaders returns a map[string]string populated with an
// authentication header that makes use of the client's own bearer token.
func (b *baseClient) bearerTokenAuthHeaders() map[string]string {
	return bearerTokenAuthHeaders(b.apiToken)
}

// bearerTokenAuthHeaders returns a map[string]string populated with an
// authentication header that makes use of the specified bearer token.
func bearerTokenAuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// executeRequest accepts one argument-- an outboundRequest-- that models all
// aspects of a single API call in a succinct fashion. Based on this
// information, this function prepares and executes an HTTP request,
// interprets the HTTP response code, and decodes the response body into a
// caller-supplied type.
func (b *baseClient) executeRequest(
	ctx context.Context,
	req outboundRequest,
) error {
	resp, err := b.submitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.respObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, req.respObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// submitRequest is a lower-level function than executeRequest(). It is used
// by executeRequest(), but is also suitable for use in cases where
// specialized response handling is required.
func (b *baseClient) submitRequest(
	ctx context.Context,
	req outboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.reqBodyObj != nil {
		reqBodyBytes, err := json.Marshal(req.reqBodyObj)
		if err != nil {
			return nil, errors.Wrap(err, "error marshaling request body")
		}
		reqBodyReader = bytes.NewBuffer(reqBodyBytes)
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.method,
		fmt.Sprintf("%s/%s", b.apiAddress, req.path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.method,
			req.path,
		)
	}
	if len(req.queryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.queryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	for k, v := range req.authHeaders {
		r.Header.Add(k, v)
	}
	if req.reqBodyObj != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.httpClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if (req.successCode == 0 && resp.StatusCode != http.StatusOK) ||
		(req.successCode != 0 && resp.StatusCode != req.successCode) {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

// decodeAPIError interprets a non-success HTTP response. The response code
// hints at what sort of error occurred; the response body, when parseable,
// supplies the details.
func decodeAPIError(resp *http.Response) error {
	details := struct {
		Detail string `json:"detail"`
	}{}
	if bodyBytes, err := io.ReadAll(resp.Body); err == nil {
		json.Unmarshal(bodyBytes, &details) // nolint: errcheck
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &ErrAuthentication{Reason: details.Detail}
	case http.StatusForbidden:
		return &ErrAuthorization{}
	case http.StatusBadRequest:
		return &ErrBadRequest{Reason: details.Detail}
	case http.StatusNotFound:
		return &ErrNotFound{Reason: details.Detail}
	case http.StatusInternalServerError:
		return &ErrInternalServer{}
	default:
		return errors.Errorf("received %d from API server", resp.StatusCode)
	}
}
