package syno

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// entryPath is the single CGI endpoint all DSM API requests go through.
const entryPath = "/webapi/entry.cgi"

// Client talks to the DSM Photos API of one server. It injects the common
// api/method/version parameters, attaches the session id when present, and
// decodes the response envelope. Retry and multi-step orchestration belong
// to the callers; every method here is a single request/decode pair.
type Client struct {
	baseURL    string
	sid        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the DSM server at baseURL. sid may be empty
// for unauthenticated calls (login).
func NewClient(baseURL string, sid string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sid:        sid,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the server address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// commonValues assembles the parameters every DSM API call carries.
func (c *Client) commonValues(api, method string, version int) url.Values {
	v := url.Values{}
	v.Set("api", api)
	v.Set("method", method)
	v.Set("version", strconv.Itoa(version))

	if c.sid != "" {
		v.Set("_sid", c.sid)
	}

	return v
}

// get performs a GET request to entry.cgi and decodes the envelope data into out.
func (c *Client) get(ctx context.Context, api, method string, version int, params url.Values, out any) error {
	v := c.commonValues(api, method, version)
	for key, vals := range params {
		for _, val := range vals {
			v.Add(key, val)
		}
	}

	reqURL := c.baseURL + entryPath + "?" + v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("syno: building request: %w", err)
	}

	return c.do(req, api, method, out)
}

// post performs a form-encoded POST request to entry.cgi and decodes the
// envelope data into out.
func (c *Client) post(ctx context.Context, api, method string, version int, form url.Values, out any) error {
	v := c.commonValues(api, method, version)
	for key, vals := range form {
		for _, val := range vals {
			v.Add(key, val)
		}
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+entryPath, strings.NewReader(v.Encode()))
	if err != nil {
		return fmt.Errorf("syno: building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, api, method, out)
}

// do sends the request and decodes the DSM envelope. A non-2xx status is an
// HTTPError; an envelope with success=false is an APIError; a successful
// envelope without data is a protocol mismatch and never tolerated.
func (c *Client) do(req *http.Request, api, method string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("syno: %s.%s: %w", api, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("request failed",
			slog.String("api", api),
			slog.String("method", method),
			slog.Int("status", resp.StatusCode),
		)

		return &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("syno: reading %s.%s response: %w", api, method, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("syno: decoding %s.%s response: %w", api, method, err)
	}

	if env.Error != nil {
		apiErr := newAPIError(env.Error.Code)
		c.logger.Debug("api error",
			slog.String("api", api),
			slog.String("method", method),
			slog.Int("code", env.Error.Code),
		)

		return apiErr
	}

	if !env.Success {
		return fmt.Errorf("syno: %s.%s: envelope reports failure without an error code", api, method)
	}

	if env.Data == nil {
		return fmt.Errorf("syno: %s.%s: successful envelope missing data", api, method)
	}

	if err := json.Unmarshal(*env.Data, out); err != nil {
		return fmt.Errorf("syno: decoding %s.%s data: %w", api, method, err)
	}

	c.logger.Debug("request succeeded",
		slog.String("api", api),
		slog.String("method", method),
	)

	return nil
}

// joinIDs renders a set of numeric ids as the "[1,2,3]" array literal the
// DSM API expects in id parameters.
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	return "[" + strings.Join(parts, ",") + "]"
}
