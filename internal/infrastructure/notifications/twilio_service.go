package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// WhatsAppGatewayImpl implements domain.MessageGateway over Twilio's
// WhatsApp channel.
type WhatsAppGatewayImpl struct {
	client     *twilio.RestClient
	from       string
	otpTTL     time.Duration
	configured bool
}

// NewWhatsAppGateway creates a new Twilio WhatsApp gateway. otpTTL is
// only used for the expiry wording in the message body.
func NewWhatsAppGateway(accountSID, authToken, from string, otpTTL time.Duration) domain.MessageGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &WhatsAppGatewayImpl{
		client:     client,
		from:       from,
		otpTTL:     otpTTL,
		configured: accountSID != "" && authToken != "" && from != "",
	}
}

// SendOTP implements domain.MessageGateway. The Twilio call runs in its
// own goroutine so the context deadline set by the caller bounds it;
// hitting the deadline counts as delivery failure.
func (g *WhatsAppGatewayImpl) SendOTP(ctx context.Context, phone, code string) error {
	// If any credential is missing, log instead of sending. A from
	// number alone must not trigger a real API call with blank auth.
	if !g.configured {
		log.Printf("[MOCK WHATSAPP] To: %s, Code: %s", phone, code)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(FormatWhatsAppNumber(phone))
	params.SetFrom(g.from)
	params.SetBody(fmt.Sprintf(
		"Your verification code is: %s. This code will expire in %d minutes.",
		code, int(g.otpTTL.Minutes()),
	))

	done := make(chan error, 1)
	go func() {
		_, err := g.client.Api.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send OTP message: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("otp delivery timed out: %w", ctx.Err())
	}
}

// FormatWhatsAppNumber resolves a normalized phone number into Twilio's
// WhatsApp addressing. Bare 10-digit numbers get the default "1" country
// code.
func FormatWhatsAppNumber(phone string) string {
	digits := domain.NormalizePhone(phone)
	if len(digits) == 10 && !strings.HasPrefix(digits, "1") {
		digits = "1" + digits
	}
	return "whatsapp:+" + digits
}
