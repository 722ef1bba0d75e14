// Package fcm provides a minimal client for sending push notifications
// through Firebase Cloud Messaging.
package fcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const sendEndpoint = "https://fcm.googleapis.com/fcm/send"

// Client represents an FCM client used to send push notifications.
type Client struct {
	serverKey string
	client    *http.Client
}

// NewClient creates a new FCM Client with the given server key.
func NewClient(serverKey string) *Client {
	return &Client{
		serverKey: serverKey,
		client:    &http.Client{},
	}
}

// APIError is a non-2xx response from the FCM API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fcm API error: status %d", e.StatusCode)
}

func (e *APIError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ConnError is a transport-level failure before any API response arrived.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string { return fmt.Sprintf("fcm request: %v", e.Err) }

func (e *ConnError) Unwrap() error { return e.Err }

func (e *ConnError) Transient() bool { return true }

type sendRequest struct {
	To           string      `json:"to"`
	Notification payloadBody `json:"notification"`
}

type payloadBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send sends a push notification to the given device token.
func (c *Client) Send(deviceToken, title, body string) error {
	reqBody := sendRequest{
		To: deviceToken,
		Notification: payloadBody{
			Title: title,
			Body:  body,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, sendEndpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "key="+c.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &ConnError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}

	return nil
}
