package media

import (
	"strings"
	"testing"
)

func TestNewKeyTakesExtensionFromContentType(t *testing.T) {
	k := NewKey("image/jpeg")
	if !strings.HasSuffix(k, ".jpg") || len(k) != 36+4 {
		t.Fatalf("key = %q", k)
	}
	if k := NewKey("IMAGE/WEBP"); !strings.HasSuffix(k, ".webp") {
		t.Fatalf("key = %q", k)
	}
	if NewKey("image/png") == NewKey("image/png") {
		t.Fatal("keys must be unique")
	}
}

func TestValidateKey(t *testing.T) {
	for _, bad := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`, ".hidden"} {
		if ValidateKey(bad) == nil {
			t.Errorf("ValidateKey(%q) should fail", bad)
		}
	}
	if err := ValidateKey("0d6c2a0e-8f5b-4f57-9c1e-2b3c4d5e6f70.png"); err != nil {
		t.Fatalf("ValidateKey: %v", err)
	}
}

func TestIsImage(t *testing.T) {
	for _, ok := range []string{"image/PNG", "image/jpeg", "image/webp"} {
		if !IsImage(ok) {
			t.Errorf("IsImage(%q) = false", ok)
		}
	}
	for _, bad := range []string{"application/pdf", "image/svg+xml", "text/html", "image/x-unknown"} {
		if IsImage(bad) {
			t.Errorf("IsImage(%q) = true", bad)
		}
	}
}
