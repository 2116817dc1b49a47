// Package sms provides outbound SMS delivery through a Twilio-compatible
// REST gateway.
package sms

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"
	"bookinghub_backend/platform/phone"
)

const defaultBaseURL = "https://api.twilio.com"

// Sender delivers a single SMS message.
type Sender interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// Client sends SMS messages over the gateway's Messages endpoint. Credentials
// are resolved on every send so a gateway configured after startup works
// without a restart.
type Client struct {
	baseURL string
	creds   config.SMSConfig
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a new SMS client
func NewClient(creds config.SMSConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		creds:   creds,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// SendMessage delivers an SMS to the given phone number.
func (c *Client) SendMessage(ctx context.Context, phoneNumber string, message string) error {
	credentials, ok := c.creds.LookupSMSCredentials()
	if !ok {
		return fmt.Errorf("sms delivery not configured")
	}

	normalized := phone.NormalizeE164(phoneNumber)

	form := url.Values{}
	form.Set("To", normalized)
	form.Set("From", credentials.FromNumber)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(c.baseURL, "/"), credentials.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", basicAuth(credentials.AccountSID, credentials.AuthToken))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("sms sent", "phone", normalized)
	return nil
}

func basicAuth(username, password string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + encoded
}

// Compile-time check
var _ Sender = (*Client)(nil)
