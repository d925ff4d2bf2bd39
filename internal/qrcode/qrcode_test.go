package qrcode

import (
	"bytes"
	"strings"
	"testing"
)

func TestLandingURL(t *testing.T) {
	if got := LandingURL("https://salon.example/"); got != "https://salon.example/qr/voice-booking" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestPNG(t *testing.T) {
	img, err := PNG("https://salon.example/qr/voice-booking", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected png signature")
	}
	if !strings.HasPrefix(DataURI(img), "data:image/png;base64,iVBOR") {
		t.Fatalf("unexpected data uri prefix")
	}
}

func TestPNGRejectsEmpty(t *testing.T) {
	if _, err := PNG("", 0); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestWriteTerminal(t *testing.T) {
	var buf bytes.Buffer
	WriteTerminal(&buf, "https://salon.example")
	if buf.Len() == 0 {
		t.Fatalf("expected terminal output")
	}
}
