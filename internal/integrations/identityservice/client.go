package identityservice

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

// Verification результат проверки личности
type Verification struct {
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
	Method   string `json:"method"` // "otp" или "trusted_device"
}

// Client клиент для работы с сервисом проверки личности
// Сам механизм OTP/доверенных устройств живёт в отдельном сервисе,
// здесь только вопрос "подтверждена ли личность по этому номеру"
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса проверки личности
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CheckVerified проверяет, подтверждена ли личность по номеру телефона
func (c *Client) CheckVerified(ctx context.Context, phone string) (*Verification, error) {
	url := fmt.Sprintf("%s/internal/identity/%s/verification", c.baseURL, phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrNotVerified
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var verification Verification
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !verification.Verified {
		return nil, ErrNotVerified
	}

	c.log.Info("IdentityService: phone=%s verified via %s", phone, verification.Method)
	return &verification, nil
}
