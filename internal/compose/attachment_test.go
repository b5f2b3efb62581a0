package compose

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"crosspost/internal/api"
)

// jpegBytes returns a buffer that sniffs as image/jpeg.
func jpegBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return data
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestSelectLocalFileAcceptsImage(t *testing.T) {
	m := NewAttachmentManager()
	path := writeTempFile(t, "photo.jpg", jpegBytes(9<<20))

	if err := m.SelectLocalFile(path); err != nil {
		t.Fatalf("select: %v", err)
	}

	att := m.Current()
	if att.Empty() {
		t.Fatal("expected attachment")
	}
	if att.Name != "photo.jpg" {
		t.Errorf("name = %q", att.Name)
	}
	if att.PreviewRef == "" {
		t.Error("expected non-empty preview reference")
	}
	if len(att.Data) != 9<<20 {
		t.Errorf("data = %d bytes", len(att.Data))
	}
}

func TestSelectLocalFileRejectsOversized(t *testing.T) {
	m := NewAttachmentManager()
	path := writeTempFile(t, "big.jpg", jpegBytes(11<<20))

	err := m.SelectLocalFile(path)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("err = %v, want ErrImageTooLarge", err)
	}
	if !m.Current().Empty() {
		t.Error("rejected file must not change state")
	}
}

func TestSelectLocalFileRejectsNonImage(t *testing.T) {
	m := NewAttachmentManager()
	path := writeTempFile(t, "notes.txt", []byte("plain text, not an image"))

	err := m.SelectLocalFile(path)
	if !errors.Is(err, ErrNotAnImage) {
		t.Errorf("err = %v, want ErrNotAnImage", err)
	}
	if !m.Current().Empty() {
		t.Error("rejected file must not change state")
	}
}

func TestSelectLocalFileRejectionKeepsPrevious(t *testing.T) {
	m := NewAttachmentManager()
	good := writeTempFile(t, "photo.jpg", jpegBytes(1024))
	bad := writeTempFile(t, "notes.txt", []byte("plain text"))

	if err := m.SelectLocalFile(good); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := m.SelectLocalFile(bad); err == nil {
		t.Fatal("expected rejection")
	}
	if m.Current().Name != "photo.jpg" {
		t.Error("previous attachment must survive a rejected selection")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	m := NewAttachmentManager()
	path := writeTempFile(t, "photo.jpg", jpegBytes(1024))

	if err := m.SelectLocalFile(path); err != nil {
		t.Fatalf("select: %v", err)
	}

	m.Remove()
	first := m.Current()
	m.Remove()
	second := m.Current()

	if !first.Empty() || !second.Empty() {
		t.Error("expected empty attachment after remove, twice")
	}
	if first.Data != nil || first.PreviewRef != "" {
		t.Error("file and preview reference must clear together")
	}
}

type fakeImageSource struct {
	image   api.GeneratedImage
	fetched []byte
	calls   int
}

func (f *fakeImageSource) GenerateImage(_ context.Context, prompt string) (api.GeneratedImage, error) {
	f.calls++
	return f.image, nil
}

func (f *fakeImageSource) FetchImage(_ context.Context, url string) ([]byte, error) {
	return f.fetched, nil
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	m := NewAttachmentManager()
	source := &fakeImageSource{}

	for _, prompt := range []string{"", "  "} {
		if err := m.GenerateImage(context.Background(), source, prompt); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("prompt %q: err = %v, want ErrEmptyPrompt", prompt, err)
		}
	}
	if source.calls != 0 {
		t.Errorf("expected no network calls, got %d", source.calls)
	}
}

func TestGenerateImageBase64Normalized(t *testing.T) {
	raw := jpegBytes(64)
	encoded := base64.StdEncoding.EncodeToString(raw)
	m := NewAttachmentManager()
	source := &fakeImageSource{image: api.GeneratedImage{Base64: encoded}}

	if err := m.GenerateImage(context.Background(), source, "a sunrise"); err != nil {
		t.Fatalf("generate image: %v", err)
	}

	att := m.Current()
	if att.Name != GeneratedImageName {
		t.Errorf("name = %q, want %q", att.Name, GeneratedImageName)
	}
	if len(att.Data) != len(raw) {
		t.Errorf("data = %d bytes, want %d", len(att.Data), len(raw))
	}
	if att.PreviewRef != encoded {
		t.Error("preview reference should keep the original base64 string")
	}
}

func TestGenerateImageDataURLNormalized(t *testing.T) {
	raw := jpegBytes(16)
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	m := NewAttachmentManager()
	source := &fakeImageSource{image: api.GeneratedImage{Base64: dataURL}}

	if err := m.GenerateImage(context.Background(), source, "a sunrise"); err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if len(m.Current().Data) != len(raw) {
		t.Errorf("data = %d bytes, want %d", len(m.Current().Data), len(raw))
	}
}

func TestGenerateImageURLNormalized(t *testing.T) {
	raw := jpegBytes(32)
	m := NewAttachmentManager()
	source := &fakeImageSource{
		image:   api.GeneratedImage{URL: "https://img.example.com/abc.jpg"},
		fetched: raw,
	}

	if err := m.GenerateImage(context.Background(), source, "a sunrise"); err != nil {
		t.Fatalf("generate image: %v", err)
	}

	att := m.Current()
	if att.Name != GeneratedImageName {
		t.Errorf("name = %q", att.Name)
	}
	if att.PreviewRef != "https://img.example.com/abc.jpg" {
		t.Errorf("preview = %q", att.PreviewRef)
	}
	if len(att.Data) != len(raw) {
		t.Errorf("data = %d bytes", len(att.Data))
	}
}

func TestGenerateImageNeitherFieldLeavesEmpty(t *testing.T) {
	m := NewAttachmentManager()
	path := writeTempFile(t, "photo.jpg", jpegBytes(64))
	if err := m.SelectLocalFile(path); err != nil {
		t.Fatalf("select: %v", err)
	}

	source := &fakeImageSource{image: api.GeneratedImage{}}
	if err := m.GenerateImage(context.Background(), source, "a sunrise"); err != nil {
		t.Fatalf("generate image: %v", err)
	}

	att := m.Current()
	if !att.Empty() {
		t.Error("expected empty attachment when backend produced no image")
	}
	if att.Data != nil || att.PreviewRef != "" {
		t.Error("file and preview reference must stay absent together")
	}
}
