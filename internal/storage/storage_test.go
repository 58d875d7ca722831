package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"acc-portal/config"
)

func TestLocalPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.UploadConfig{Backend: "local", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Name() != "local" {
		t.Fatalf("expected local backend, got %q", s.Name())
	}

	if err := s.Put(ctx, "logo.png", strings.NewReader("png-bytes"), 9, "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, info, err := s.Get(ctx, "logo.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "png-bytes" {
		t.Fatalf("unexpected body %q", body)
	}
	if info.ContentType != "image/png" || info.Size != 9 {
		t.Fatalf("unexpected info %+v", info)
	}

	if err := s.Delete(ctx, "logo.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := s.Get(ctx, "logo.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "logo.png"); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	for _, key := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`, ".hidden"} {
		if err := l.Put(context.Background(), key, strings.NewReader("x"), 1, ""); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), config.UploadConfig{Backend: "ftp"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenMinioRequiresEndpoint(t *testing.T) {
	_, err := Open(context.Background(), config.UploadConfig{Backend: "minio", MinioBucket: "b"})
	if err == nil || !strings.Contains(err.Error(), "endpoint") {
		t.Fatalf("expected endpoint error, got %v", err)
	}
}
