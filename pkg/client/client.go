// Package client is a Go consumer of the chat API, mirroring what the web
// frontend does: thin endpoint wrappers plus a local conversation cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the server envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type Message struct {
	MessageId string    `json:"messageId"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionSummary struct {
	ChatId    string     `json:"chatId"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type History struct {
	ChatId    string     `json:"chatId"`
	Title     string     `json:"title"`
	Messages  []Message  `json:"messages"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type SessionList struct {
	Sessions      []SessionSummary `json:"sessions"`
	TotalSessions int64            `json:"totalSessions"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int              `json:"totalPages"`
}

type NewSession struct {
	ChatId    string    `json:"chatId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type SendResult struct {
	Response  string    `json:"response"`
	ChatId    string    `json:"chatId"`
	Timestamp time.Time `json:"timestamp"`
	MessageId string    `json:"messageId"`
}

type TitleResult struct {
	ChatId string `json:"chatId"`
	Title  string `json:"title"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) CreateSession(ctx context.Context, userId, title string) (*NewSession, error) {
	var res NewSession
	err := c.do(ctx, http.MethodPost, "/api/chat/session/new", map[string]string{
		"userId": userId,
		"title":  title,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SendMessage(ctx context.Context, userId, chatId, text string) (*SendResult, error) {
	var res SendResult
	err := c.do(ctx, http.MethodPost, "/api/chat/message", map[string]string{
		"message": text,
		"chatId":  chatId,
		"userId":  userId,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetHistory(ctx context.Context, userId, chatId string) (*History, error) {
	var res History
	path := fmt.Sprintf("/api/chat/history/%s?userId=%s", url.PathEscape(chatId), url.QueryEscape(userId))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListSessions(ctx context.Context, userId string, page, limit int) (*SessionList, error) {
	var res SessionList
	path := fmt.Sprintf("/api/chat/sessions/%s?page=%d&limit=%d", url.PathEscape(userId), page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateTitle(ctx context.Context, userId, chatId, title string) (*TitleResult, error) {
	var res TitleResult
	path := fmt.Sprintf("/api/chat/session/%s/title", url.PathEscape(chatId))
	err := c.do(ctx, http.MethodPut, path, map[string]string{
		"title":  title,
		"userId": userId,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteSession(ctx context.Context, userId, chatId string) error {
	path := fmt.Sprintf("/api/chat/session/%s?userId=%s", url.PathEscape(chatId), url.QueryEscape(userId))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
