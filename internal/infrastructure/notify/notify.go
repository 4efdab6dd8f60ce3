package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OTPMessage is the payload delivered to whoever forwards codes to users.
type OTPMessage struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Notifier interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

type webhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhook posts each code as JSON to url.
func NewWebhook(url string, timeout time.Duration) Notifier {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return webhookNotifier{client: c, url: url}
}

func (n webhookNotifier) SendOTP(ctx context.Context, msg OTPMessage) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("otp webhook: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent, http.StatusCreated:
		return nil
	default:
		return fmt.Errorf("otp webhook status: %d", resp.StatusCode())
	}
}

type logNotifier struct{ log *zap.Logger }

// NewLog writes codes to the log. Only meant for local runs without a webhook.
func NewLog(log *zap.Logger) Notifier { return logNotifier{log: log} }

func (n logNotifier) SendOTP(_ context.Context, msg OTPMessage) error {
	n.log.Info("otp issued",
		zap.String("username", msg.Username),
		zap.String("code", msg.Code),
		zap.Time("expires_at", msg.ExpiresAt),
	)
	return nil
}
