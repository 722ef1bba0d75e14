// Package twilio provides a minimal client for sending SMS through the
// Twilio Messages API.
package twilio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const apiBase = "https://api.twilio.com/2010-04-01"

// Client represents a Twilio client used to send SMS notifications.
type Client struct {
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
}

// NewClient creates a new Twilio Client for the given account credentials.
func NewClient(accountSID, authToken, fromNumber string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		client:     &http.Client{},
	}
}

// APIError is a non-2xx response from the Twilio API.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twilio API error: status %d code %d: %s", e.StatusCode, e.Code, e.Message)
}

// Transient reports whether the rejection is worth retrying: rate limiting
// and server-side errors are; hard rejections (bad number, auth) are not.
func (e *APIError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ConnError is a transport-level failure before any API response arrived.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string { return fmt.Sprintf("twilio request: %v", e.Err) }

func (e *ConnError) Unwrap() error { return e.Err }

func (e *ConnError) Transient() bool { return true }

// Send sends an SMS to the given phone number and returns the provider
// message SID.
func (c *Client) Send(to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", apiBase, c.accountSID)

	form := url.Values{
		"To":   {to},
		"From": {c.fromNumber},
		"Body": {body},
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ConnError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		return "", &APIError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	}

	var created struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return created.SID, nil
}
