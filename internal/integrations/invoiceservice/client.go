// Package invoiceservice клиент сервиса документов. Уведомление о
// подтверждении брони запускает выставление чека; сбой уведомления
// не влияет на статус брони и компенсируется повторной отправкой.
package invoiceservice

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

// Client клиент для работы с InvoiceService
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента InvoiceService
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

// NotifyBookingConfirmed уведомляет сервис документов о подтвержденной брони
func (c *Client) NotifyBookingConfirmed(ctx context.Context, confirmation BookingConfirmation) error {
	url := fmt.Sprintf("%s/internal/invoices/bookings", c.baseURL)

	payload, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal confirmation: %v", ErrInternal, err)
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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("Booking confirmation sent to invoice service: reference=%s", confirmation.BookingReference)
	return nil
}
