package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/spf13/cast"
)

// ParentID decodes the API's parentId, which is the number 0 at the root
// and a string otherwise.
type ParentID string

func (p *ParentID) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return err
	}
	*p = ParentID(s)
	return nil
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type File struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	IsPublic bool     `json:"isPublic"`
	ParentID ParentID `json:"parentId"`
}

// NewFile is a creation request. Data holds raw bytes; the client encodes
// them.
type NewFile struct {
	Name     string
	Type     string
	Data     []byte
	ParentID string
	IsPublic bool
}

type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) { c.token = token }
func (c *HTTPClient) Token() string         { return c.token }

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*User, error) {
	var u User
	err := c.doJSON(ctx, http.MethodPost, "/users", nil, map[string]string{"email": email, "password": password}, &u, false)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Connect exchanges credentials for a session token and keeps it.
func (c *HTTPClient) Connect(ctx context.Context, email, password string) (string, error) {
	auth := "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
	headers := map[string]string{common.AuthorizationHeaderName: auth}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/connect", headers, nil, &out, false); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// Disconnect revokes the current token and forgets it.
func (c *HTTPClient) Disconnect(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodGet, "/disconnect", nil, nil, nil, true); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *HTTPClient) CreateFile(ctx context.Context, in NewFile) (*File, error) {
	body := map[string]any{
		"name":     in.Name,
		"type":     in.Type,
		"isPublic": in.IsPublic,
	}
	if in.ParentID != "" {
		body["parentId"] = in.ParentID
	}
	if in.Type != "folder" {
		body["data"] = base64.StdEncoding.EncodeToString(in.Data)
	}

	var f File
	if err := c.doJSON(ctx, http.MethodPost, "/files", nil, body, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *HTTPClient) GetFile(ctx context.Context, id string) (*File, error) {
	var f File
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+url.PathEscape(id), nil, nil, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context, parentID string, page int) ([]File, error) {
	q := url.Values{}
	if parentID != "" {
		q.Set("parentId", parentID)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	path := "/files"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	out := []File{}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SetPublish(ctx context.Context, id string, isPublic bool) (*File, error) {
	action := "unpublish"
	if isPublic {
		action = "publish"
	}

	var f File
	if err := c.doJSON(ctx, http.MethodPut, "/files/"+url.PathEscape(id)+"/"+action, nil, nil, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// Download fetches the bytes of a file. size selects a thumbnail width when
// non-zero. The token is sent when one is set.
func (c *HTTPClient) Download(ctx context.Context, id string, size int) ([]byte, string, error) {
	path := "/files/" + url.PathEscape(id) + "/data"
	if size > 0 {
		path += "?size=" + strconv.Itoa(size)
	}

	resp, err := c.send(ctx, http.MethodGet, path, nil, nil, c.token != "")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *HTTPClient) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.doJSON(ctx, http.MethodGet, "/status", nil, nil, &st, false); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, headers map[string]string, in, out any, withToken bool) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.send(ctx, method, path, headers, body, withToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, headers map[string]string, body io.Reader, withToken bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken && c.token != "" {
		req.Header.Set(common.TokenHeaderName, c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var e struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
		msg = e.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
