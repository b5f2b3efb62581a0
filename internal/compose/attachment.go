package compose

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"crosspost/internal/api"
)

// MaxImageBytes is the client-side size limit for attached images.
const MaxImageBytes = 10 << 20

// GeneratedImageName is the filename used for AI-generated images so
// they are indistinguishable downstream from a locally picked file.
const GeneratedImageName = "generated_image.jpg"

var (
	ErrEmptyPrompt   = errors.New("please enter an image prompt")
	ErrNotAnImage    = errors.New("please select an image file")
	ErrImageTooLarge = errors.New("image must be 10 MiB or smaller")
)

// Attachment is the single optional image bound to the current draft.
// Data and PreviewRef are set and cleared together.
type Attachment struct {
	Name       string
	Data       []byte
	PreviewRef string
}

func (a Attachment) Empty() bool {
	return a.Data == nil && a.PreviewRef == ""
}

// ImageSource produces AI images. *api.Client satisfies it.
type ImageSource interface {
	GenerateImage(ctx context.Context, prompt string) (api.GeneratedImage, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// AttachmentManager holds the current attachment. A rejected selection
// never touches existing state.
type AttachmentManager struct {
	mu      sync.Mutex
	current Attachment
}

func NewAttachmentManager() *AttachmentManager {
	return &AttachmentManager{}
}

// Current returns the attachment as-is; empty when none is set.
func (m *AttachmentManager) Current() Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Restore loads a previously persisted attachment.
func (m *AttachmentManager) Restore(a Attachment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = a
}

// SelectLocalFile validates and attaches an image from disk. Rejections
// (wrong type, too large) leave the previous attachment in place.
func (m *AttachmentManager) SelectLocalFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return ErrNotAnImage
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Attachment{
		Name:       filepath.Base(path),
		Data:       data,
		PreviewRef: path,
	}
	return nil
}

// GenerateImage requests an AI image and normalizes the response,
// inline base64 or a hosted URL, into a named file object. The
// original base64/URL string is kept as the preview reference. When the
// backend produces neither, the attachment is left empty rather than
// half-set.
func (m *AttachmentManager) GenerateImage(ctx context.Context, source ImageSource, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}

	gi, err := source.GenerateImage(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generate image: %w", err)
	}

	var data []byte
	var preview string
	switch {
	case gi.Base64 != "":
		data, err = decodeBase64Image(gi.Base64)
		if err != nil {
			return fmt.Errorf("decode generated image: %w", err)
		}
		preview = gi.Base64
	case gi.URL != "":
		data, err = source.FetchImage(ctx, gi.URL)
		if err != nil {
			return fmt.Errorf("fetch generated image: %w", err)
		}
		preview = gi.URL
	default:
		// No image produced. Keep Data and PreviewRef absent together.
		m.mu.Lock()
		defer m.mu.Unlock()
		m.current = Attachment{}
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Attachment{
		Name:       GeneratedImageName,
		Data:       data,
		PreviewRef: preview,
	}
	return nil
}

// Remove clears the attachment. Idempotent.
func (m *AttachmentManager) Remove() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Attachment{}
}

// decodeBase64Image accepts raw base64 or a data URL.
func decodeBase64Image(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); i >= 0 {
		s = s[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}
