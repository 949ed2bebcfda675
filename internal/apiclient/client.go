// Package apiclient: HTTP-клиент удалённого API посещаемости и дашборда.
//
// API отвечает либо объектом напрямую, либо конвертом {success, data};
// клиент понимает оба варианта.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/dashboard-shell/internal/models"
)

// ErrUnexpectedStatus возвращается при ответе API с кодом вне 2xx.
var ErrUnexpectedStatus = errors.New("unexpected status")

const maxBodySize = 1 << 20

// Client ходит в удалённый API от имени сервиса.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создаёт клиента API. Пустой token: запросы без авторизации.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// VerifyResponse: ответ проверки посещаемости; потребляется только CanStartDay.
type VerifyResponse struct {
	CanStartDay bool `json:"canStartDay"`
}

// envelope: конверт {success, data}, в который API иногда заворачивает ответ.
// Признак success не проверяется: решает только истинность data.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Verify запрашивает GET /attendance/verify/{userID}.
func (c *Client) Verify(ctx context.Context, userID string) (*VerifyResponse, error) {
	const op = "apiclient.Verify"
	var res VerifyResponse
	if err := c.get(ctx, "/attendance/verify/"+url.PathEscape(userID), &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

// CanStartDay отвечает, может ли пользователь ещё начать день.
// Отсутствие поля canStartDay в ответе равносильно false.
func (c *Client) CanStartDay(ctx context.Context, userID string) (bool, error) {
	res, err := c.Verify(ctx, userID)
	if err != nil {
		return false, err
	}
	return res.CanStartDay, nil
}

// DashboardStats запрашивает GET /dashboard/stats.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "apiclient.DashboardStats"
	var stats models.DashboardStats
	if err := c.get(ctx, "/dashboard/stats", &stats); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return err
	}
	return decode(raw, out)
}

// decode разбирает тело ответа, разворачивая конверт {success, data}, если он есть.
// Ложное значение data (null, false, 0, "") означает, что конверта нет.
func decode(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	if !falsy(env.Data) {
		raw = env.Data
	}
	return json.Unmarshal(raw, out)
}

func falsy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return true
	}
	switch string(v) {
	case "null", "false", `""`:
		return true
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n == 0
	}
	return false
}
