package telephony

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioGateway sends SMS and places calls through Twilio's REST API.
type TwilioGateway struct {
	client  *twilio.RestClient
	from    string
	baseURL string
	logger  zerolog.Logger
}

func NewTwilio(accountSID, authToken, from, publicBaseURL string, logger zerolog.Logger) (*TwilioGateway, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN are required")
	}
	if from == "" {
		return nil, errors.New("TWILIO_PHONE_NUMBER is required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioGateway{client: client, from: from, baseURL: publicBaseURL, logger: logger}, nil
}

func (g *TwilioGateway) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := g.client.Api.CreateMessage(messageParams(g.from, to, body))
	if err != nil {
		return fmt.Errorf("twilio send sms to %s: %w", to, err)
	}
	g.logger.Info().Str("to", to).Str("sid", deref(resp.Sid)).Msg("sms sent")
	return nil
}

func (g *TwilioGateway) OriginateCall(ctx context.Context, to string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.baseURL == "" {
		return "", errors.New("PUBLIC_BASE_URL is required to place calls")
	}
	resp, err := g.client.Api.CreateCall(callParams(g.from, to, g.baseURL))
	if err != nil {
		return "", fmt.Errorf("twilio create call to %s: %w", to, err)
	}
	sid := deref(resp.Sid)
	g.logger.Info().Str("to", to).Str("call_sid", sid).Msg("call placed")
	return sid, nil
}

func messageParams(from, to, body string) *twilioApi.CreateMessageParams {
	p := &twilioApi.CreateMessageParams{}
	p.SetFrom(from)
	p.SetTo(to)
	p.SetBody(body)
	return p
}

func callParams(from, to, baseURL string) *twilioApi.CreateCallParams {
	p := &twilioApi.CreateCallParams{}
	p.SetFrom(from)
	p.SetTo(to)
	p.SetUrl(VoiceWebhookURL(baseURL))
	p.SetMethod("POST")
	p.SetStatusCallback(StatusCallbackURL(baseURL))
	p.SetStatusCallbackMethod("POST")
	p.SetStatusCallbackEvent([]string{"completed"})
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
