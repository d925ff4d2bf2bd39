package qrcode

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

const DefaultScale = 8

// LandingURL is the page a printed QR code opens.
func LandingURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/qr/voice-booking"
}

// PNG encodes content as a QR code image with medium error correction. scale is
// the pixel size of one module.
func PNG(content string, scale int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	code, err := qr.Encode(content, qr.M)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	code.Scale = scale
	return code.PNG(), nil
}

func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// WriteTerminal draws content as a QR code using half-block characters.
func WriteTerminal(w io.Writer, content string) {
	qrterminal.GenerateHalfBlock(content, qrterminal.M, w)
}
