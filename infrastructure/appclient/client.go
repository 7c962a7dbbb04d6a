// Package appclient is a Go client for the command listener routes.
package appclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scenebridge/scenebridge/domain/entities"
)

const (
	defaultBaseURL      = "http://127.0.0.1:8765"
	defaultUnaryTimeout = 10 * time.Second
)

type Client struct {
	baseURL      string
	client       *http.Client
	unaryTimeout time.Duration
}

func New(baseURL string) *Client {
	return NewWithClient(baseURL, nil)
}

func NewWithClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       client,
		unaryTimeout: defaultUnaryTimeout,
	}
}

// WithUnaryTimeout returns a copy whose scene queries give up after
// timeout. Script execution is bounded only by its context.
func (c *Client) WithUnaryTimeout(timeout time.Duration) *Client {
	if c == nil {
		return nil
	}
	clone := *c
	clone.unaryTimeout = timeout
	return &clone
}

// BaseURL returns the listener URL the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// RequestError is a non-2xx listener response.
type RequestError struct {
	StatusCode int
	Message    string
	Traceback  string
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// Execute submits code for evaluation and returns the rendered bindings.
// A failed evaluation is returned as *RequestError carrying the traceback.
func (c *Client) Execute(ctx context.Context, code string) (string, error) {
	body, err := c.request(ctx, http.MethodPost, "/execute_blender_script", entities.ExecuteRequest{Code: code}, true)
	if err != nil {
		return "", err
	}
	var resp entities.ExecuteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode execute response: %w", err)
	}
	if resp.Result != entities.ResultSuccess {
		return "", &RequestError{StatusCode: http.StatusOK, Message: resp.Error, Traceback: resp.Traceback}
	}
	return resp.Output, nil
}

// SceneObjects lists the host scene's object names.
func (c *Client) SceneObjects(ctx context.Context) ([]string, error) {
	body, err := c.request(ctx, http.MethodGet, "/get_scene_info", nil, false)
	if err != nil {
		return nil, err
	}
	var resp entities.SceneInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode scene response: %w", err)
	}
	if resp.Objects == nil {
		resp.Objects = []string{}
	}
	return resp.Objects, nil
}

func (c *Client) request(ctx context.Context, method, path string, body any, longLived bool) ([]byte, error) {
	reqCtx := ctx
	if !longLived && c.unaryTimeout > 0 {
		if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > c.unaryTimeout {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, c.unaryTimeout)
			defer cancel()
		}
	}
	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = buf
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		var er entities.ExecuteResponse
		if err := json.Unmarshal(payload, &er); err == nil && er.Error != "" {
			return nil, &RequestError{
				StatusCode: resp.StatusCode,
				Message:    er.Error,
				Traceback:  er.Traceback,
			}
		}
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(payload)),
		}
	}
	return payload, nil
}
