package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/2akonsultant/GoodnessGlamour/internal/config"
	"github.com/2akonsultant/GoodnessGlamour/internal/qrcode"
)

// qrgen prints the voice booking QR code to the terminal and optionally writes
// a PNG for printing.
func main() {
	out := flag.String("out", "", "write the QR code PNG to this file")
	scale := flag.Int("scale", qrcode.DefaultScale, "pixels per QR module in the PNG")
	baseURL := flag.String("base-url", "", "public base URL (defaults to PUBLIC_BASE_URL)")
	flag.Parse()

	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if *baseURL == "" {
		*baseURL = cfg.PublicBaseURL
	}
	url := qrcode.LandingURL(*baseURL)

	fmt.Println("Scan to book a doorstep appointment with Goodness Glamour:")
	qrcode.WriteTerminal(os.Stdout, url)
	fmt.Println(url)

	if *out == "" {
		return
	}
	img, err := qrcode.PNG(url, *scale)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to encode qr")
	}
	if err := os.WriteFile(*out, img, 0o644); err != nil {
		logger.Fatal().Err(err).Str("path", *out).Msg("failed to write png")
	}
	logger.Info().Str("path", *out).Msg("qr code written")
}
