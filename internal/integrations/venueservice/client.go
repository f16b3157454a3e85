// Package venueservice клиент реестра площадок и ресурсов.
// Реестр - внешний сервис: бронирование не хранит площадки и корты,
// а проверяет их существование и списки менеджеров по HTTP.
package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с VenueService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVenue получает площадку по ID
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

	var venue Venue
	if err := c.getJSON(ctx, url, &venue, ErrVenueNotFound); err != nil {
		return nil, err
	}

	return &venue, nil
}

// GetResource получает ресурс площадки по ID
func (c *Client) GetResource(ctx context.Context, venueID, resourceID int64) (*Resource, error) {
	url := fmt.Sprintf("%s/internal/venues/%d/resources/%d", c.baseURL, venueID, resourceID)

	var resource Resource
	if err := c.getJSON(ctx, url, &resource, ErrResourceNotFound); err != nil {
		return nil, err
	}

	return &resource, nil
}

// getJSON выполняет GET запрос и декодирует ответ.
// notFoundErr возвращается на 404 вместо общей ошибки.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
