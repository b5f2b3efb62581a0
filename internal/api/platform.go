package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// PlatformStatus reports whether a platform is connected. ScreenName is
// only populated for platforms that expose a handle (Twitter).
type PlatformStatus struct {
	Connected  bool   `json:"connected"`
	ScreenName string `json:"screen_name"`
}

// Status fetches the current connection state for a platform.
func (c *Client) Status(ctx context.Context, p Platform) (PlatformStatus, error) {
	var st PlatformStatus
	if err := c.getJSON(ctx, "/"+string(p)+"/status", &st); err != nil {
		return PlatformStatus{}, err
	}
	return st, nil
}

type loginResponse struct {
	AuthURL string `json:"auth_url"`
}

// BeginLogin asks the backend for the platform's OAuth authorization
// URL. The user completes the flow in a browser; the terminal outcome
// comes back through the redirect callback, not through this call.
func (c *Client) BeginLogin(ctx context.Context, p Platform) (string, error) {
	var lr loginResponse
	if err := c.getJSON(ctx, "/"+string(p)+"/login", &lr); err != nil {
		return "", err
	}
	if lr.AuthURL == "" {
		return "", fmt.Errorf("backend returned no authorization URL")
	}
	return lr.AuthURL, nil
}

// Disconnect removes the stored platform account server-side.
func (c *Client) Disconnect(ctx context.Context, p Platform) error {
	return c.delete(ctx, "/"+string(p)+"/disconnect")
}

type postResponse struct {
	Message string `json:"message"`
}

// Publish posts text and an optional image to one platform. The body is
// multipart: a "text" field plus an "image" file part when image bytes
// are given. Returns the server's success message.
func (c *Client) Publish(ctx context.Context, p Platform, text, imageName string, image []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("text", text); err != nil {
		return "", fmt.Errorf("write text field: %w", err)
	}
	if len(image) > 0 {
		part, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			return "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(image); err != nil {
			return "", fmt.Errorf("write image part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/"+string(p)+"/post", &buf, true)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var pr postResponse
	if err := c.do(req, &pr); err != nil {
		return "", err
	}
	return pr.Message, nil
}
