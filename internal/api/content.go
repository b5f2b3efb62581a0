package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type generateRequest struct {
	Topic  string `json:"topic"`
	Tone   string `json:"tone"`
	Length string `json:"length"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateText asks the backend's AI endpoint for post text. Tone and
// length are opaque strings the backend interprets.
func (c *Client) GenerateText(ctx context.Context, topic, tone, length string) (string, error) {
	var gr generateResponse
	req := generateRequest{Topic: topic, Tone: tone, Length: length}
	if err := c.postJSON(ctx, "/content/generate", req, &gr, true); err != nil {
		return "", err
	}
	return gr.GeneratedText, nil
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

// GeneratedImage is the backend's image response. Exactly one of Base64
// and URL is normally set; both absent means no image was produced.
type GeneratedImage struct {
	Base64 string `json:"image_base64"`
	URL    string `json:"image_url"`
}

// GenerateImage asks the backend's AI endpoint for an image.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (GeneratedImage, error) {
	var gi GeneratedImage
	if err := c.postJSON(ctx, "/content/generate-image", imageRequest{Prompt: prompt}, &gi, true); err != nil {
		return GeneratedImage{}, err
	}
	return gi, nil
}

// FetchImage downloads image bytes from an absolute URL, used when the
// backend returns a hosted image instead of inline data.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return data, nil
}
