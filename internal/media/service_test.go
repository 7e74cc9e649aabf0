package media

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURLFallback(t *testing.T) {
	svc := NewService(context.Background(), Config{})
	if svc.ObjectStorage() {
		t.Fatal("expected data-url fallback when no endpoint is set")
	}

	data := []byte("fake-png-bytes")
	url, err := svc.Store(context.Background(), "image/png", data)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	if url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}

func TestStoreRejectsUnknownType(t *testing.T) {
	svc := NewService(context.Background(), Config{})
	if _, err := svc.Store(context.Background(), "application/pdf", []byte("x")); err == nil {
		t.Fatal("expected rejection of non-image content type")
	}
	if _, err := svc.Store(context.Background(), "", []byte("x")); err == nil {
		t.Fatal("expected rejection of missing content type")
	}
}

func TestStoreRejectsOversized(t *testing.T) {
	svc := NewService(context.Background(), Config{MaxBytes: 8})
	if _, err := svc.Store(context.Background(), "image/jpeg", []byte("123456789")); err == nil {
		t.Fatal("expected rejection above the size cap")
	}
	if _, err := svc.Store(context.Background(), "image/jpeg", []byte("12345678")); err != nil {
		t.Fatalf("expected data at the cap to pass, got %v", err)
	}
}

func TestStoreRejectsEmpty(t *testing.T) {
	svc := NewService(context.Background(), Config{})
	if _, err := svc.Store(context.Background(), "image/webp", nil); err == nil {
		t.Fatal("expected rejection of empty image")
	}
}

func TestAllowedTypeExtensions(t *testing.T) {
	cases := map[string]string{
		"image/png":  ".png",
		"image/jpeg": ".jpg",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
	for contentType, ext := range cases {
		got, ok := allowedTypes[contentType]
		if !ok || got != ext {
			t.Errorf("expected %s -> %s, got %s (ok=%v)", contentType, ext, got, ok)
		}
	}
}

func TestDataURLShape(t *testing.T) {
	url := dataURL("image/gif", []byte{0x47, 0x49, 0x46})
	if !strings.HasPrefix(url, "data:image/gif;base64,") {
		t.Errorf("unexpected data url prefix: %q", url)
	}
}
