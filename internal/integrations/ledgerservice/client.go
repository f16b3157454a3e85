// Package ledgerservice клиент финансового реестра. Подтверждение брони
// порождает запись о распределении выручки; сама бронь при этом уже
// подтверждена, поэтому ошибки реестра логируются, но не откатывают статус.
package ledgerservice

import (
	"bytes"
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

// Client клиент для работы с LedgerService
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента LedgerService
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RecordBookingRevenue отправляет запись о выручке в финансовый реестр
func (c *Client) RecordBookingRevenue(ctx context.Context, record RevenueRecord) error {
	url := fmt.Sprintf("%s/internal/revenue/records", c.baseURL)

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal record: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("Revenue record sent: reference=%s, venue_id=%d", record.BookingReference, record.VenueID)
	return nil
}
