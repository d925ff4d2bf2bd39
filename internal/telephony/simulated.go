package telephony

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SimulatedGateway logs what would have been sent. No calls or messages leave
// the process.
type SimulatedGateway struct {
	Logger zerolog.Logger
	Now    func() time.Time
}

func (s SimulatedGateway) Send(_ context.Context, to, body string) error {
	s.Logger.Info().Str("to", to).Str("body", body).Msg("simulated sms")
	return nil
}

func (s SimulatedGateway) OriginateCall(_ context.Context, to string) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sid := fmt.Sprintf("sim_%d_%s", now().Unix(), uuid.NewString()[:8])
	s.Logger.Info().Str("to", to).Str("call_sid", sid).Msg("simulated call, no call placed")
	return sid, nil
}
