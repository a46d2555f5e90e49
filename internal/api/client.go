package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/me/csvbrowse/pkg/model"
)

// TokenSource supplies the bearer token attached to authenticated
// requests. An empty string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client communicates with the CSV Browser server REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient creates an API client with connection pooling.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		logger: logger.With("component", "api"),
	}
}

// SetTokenSource installs the session providing bearer tokens.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// Login authenticates and returns the access token issued by the server.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("login: decode response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("login: server returned no access token")
	}
	return token.AccessToken, nil
}

// Signup creates a new account. It does not log the account in.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signup", bytes.NewReader(body), "application/json")
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	resp.Body.Close()
	return nil
}

// ListFiles fetches the full file list in server order.
func (c *Client) ListFiles(ctx context.Context) ([]model.FileSummary, error) {
	var files []model.FileSummary
	if err := c.getJSON(ctx, "/api/csv", &files); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// FileContent fetches the parsed content of one file.
func (c *Client) FileContent(ctx context.Context, id int64) (*model.FileContent, error) {
	var content model.FileContent
	if err := c.getJSON(ctx, fmt.Sprintf("/api/csv/%d", id), &content); err != nil {
		return nil, fmt.Errorf("file content %d: %w", id, err)
	}
	return &content, nil
}

// Download streams the raw file bytes to w.
func (c *Client) Download(ctx context.Context, id int64, w io.Writer) error {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/csv/%d/download", id), nil, "")
	if err != nil {
		return fmt.Errorf("download %d: %w", id, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %d: %w", id, err)
	}
	return nil
}

// UploadFile sends file bytes as a multipart form (field "file").
// Admin only; the server enforces the role.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*model.FileSummary, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/admin/csv/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	var summary model.FileSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("upload %s: decode response: %w", filename, err)
	}
	return &summary, nil
}

// DeleteFile removes a file. Admin only.
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/csv/%d", id), nil, "")
	if err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	resp.Body.Close()
	return nil
}

// ListUsers fetches all accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.getJSON(ctx, "/api/admin/users", &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil, "")
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	resp.Body.Close()
	return nil
}

// getJSON performs a GET and decodes the response body into dest.
func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRequest executes an HTTP request, attaching the bearer token when
// one is cached. Responses with status >= 400 become *model.APIError
// carrying the server's detail message.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("HTTP request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("HTTP response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}

	return resp, nil
}

// decodeError turns an error response into *model.APIError. The server
// reports failures as {"detail": "..."}; anything else keeps the raw
// body as the detail.
func decodeError(resp *http.Response) error {
	apiErr := &model.APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	return apiErr
}
