// HTTP-клиент REST-бэкенда портала для новостей: чтение, сохранение и
// публикация. Ретраи на этом уровне выключены: политика повторов
// принадлежит координатору автосохранения, транспорт только выполняет
// одиночный запрос с таймаутом.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/dto"
	stack_error "github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/stack-error"
)

type Client struct {
	base *url.URL
	http *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	cl := retryablehttp.NewClient()
	cl.RetryMax = 0
	cl.Logger = slog.Default()
	cl.HTTPClient.Timeout = timeout

	return &Client{base: base, http: cl.StandardClient()}, nil
}

// Fetch загружает новость: GET /news/{slug}?language_code=
func (c *Client) Fetch(ctx context.Context, slug, languageCode string) (*dto.News, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.newsURL(slug, "", languageCode), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, stack_error.TrackErrorStack(err).AddContext("slug", slug)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp, slug)
	}

	var news dto.News
	if err := json.NewDecoder(resp.Body).Decode(&news); err != nil {
		return nil, stack_error.TrackErrorStack(err).AddContext("slug", slug)
	}
	return &news, nil
}

// Save сохраняет полный снимок новости: PUT /news/{slug}?language_code=
// Успех - любой 2xx статус; другой статус или сетевая ошибка - отказ.
func (c *Client) Save(ctx context.Context, slug, languageCode string, news *dto.News) error {
	return c.put(ctx, c.newsURL(slug, "", languageCode), news, slug)
}

// Publish публикует новость: PUT /news/{slug}/publish?language=
// Возвращает адрес опубликованной статьи для редиректа.
func (c *Client) Publish(ctx context.Context, slug, languageCode string, req *dto.PublishRequest) (string, error) {
	u := c.base.JoinPath("news", slug, "publish")
	q := u.Query()
	q.Set("language", languageCode)
	u.RawQuery = q.Encode()

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", stack_error.TrackErrorStack(err).AddContext("slug", slug)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newStatusError(resp, slug)
	}

	var published dto.PublishResponse
	if err := json.NewDecoder(resp.Body).Decode(&published); err == nil && published.URL != "" {
		return published.URL, nil
	}
	// Бэкенд может отвечать редиректом вместо тела.
	return resp.Header.Get("Location"), nil
}

func (c *Client) put(ctx context.Context, rawURL string, payload any, slug string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, rawURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return stack_error.TrackErrorStack(err).AddContext("slug", slug)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp, slug)
	}
	return nil
}

func (c *Client) newsURL(slug, suffix, languageCode string) string {
	u := c.base.JoinPath("news", slug)
	if suffix != "" {
		u = u.JoinPath(suffix)
	}
	q := u.Query()
	q.Set("language_code", languageCode)
	u.RawQuery = q.Encode()
	return u.String()
}

func newStatusError(resp *http.Response, slug string) error {
	err := fmt.Errorf("backend returned %s", resp.Status)
	return stack_error.TrackErrorStack(err).
		AddContext("slug", slug).
		AddContext("status", resp.StatusCode)
}
