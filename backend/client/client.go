package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"optiwave/backend/model"
)

// Client calls the OptiWave REST API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a server error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// NewClient constructs an API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// VideoList is one page of catalog results.
type VideoList struct {
	Videos []*model.Video `json:"videos"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total"`
}

// Session is the authenticated identity returned by login and register.
type Session struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

func (c *Client) Register(email, password, name string) (*Session, error) {
	var session Session
	err := c.postJSON("/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Login(email, password string) (*Session, error) {
	var session Session
	err := c.postJSON("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListVideos queries the catalog. Zero page/limit fall back to server
// defaults; empty category/search are omitted.
func (c *Client) ListVideos(page, limit int, category, search string) (*VideoList, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if category != "" {
		values.Set("category", category)
	}
	if search != "" {
		values.Set("search", search)
	}
	path := "/api/videos"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list VideoList
	if err := c.getJSON(path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) FeaturedVideos() ([]*model.Video, error) {
	var videos []*model.Video
	if err := c.getJSON("/api/videos/featured", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *Client) TrendingVideos() ([]*model.Video, error) {
	var videos []*model.Video
	if err := c.getJSON("/api/videos/trending", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Video fetches one record by id. The server increments the view count as a
// side effect of this call.
func (c *Client) Video(id int64) (*model.Video, error) {
	var video model.Video
	if err := c.getJSON(fmt.Sprintf("/api/videos/%d", id), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *Client) Categories() ([]string, error) {
	var categories []string
	if err := c.getJSON("/api/videos/categories/list", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// UploadInput is the client side of a multipart upload.
type UploadInput struct {
	Title       string
	Description string
	Category    string
	Tags        string
	Filename    string
	MimeType    string
	Content     io.Reader
}

// UploadVideo submits a multipart upload with the given bearer token.
func (c *Client) UploadVideo(token string, input UploadInput) (*model.Video, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, value := range map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
		"tags":        input.Tags,
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="video"; filename="%s"`, input.Filename))
	header.Set("Content-Type", input.MimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, input.Content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/videos/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var video model.Video
	if err := c.do(req, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// SetFeatured marks a record featured or not. Requires an admin token.
func (c *Client) SetFeatured(token string, id int64, featured bool) (*model.Video, error) {
	body, err := json.Marshal(map[string]bool{"featured": featured})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/api/videos/%d/feature", c.baseURL, id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var video model.Video
	if err := c.do(req, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: resp.Status}
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
