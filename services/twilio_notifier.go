package services

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"lexschedule-backend/config"
)

// TwilioNotifier delivers reminders as SMS or WhatsApp messages to the
// practitioner's own phone. It is an optional channel; with no credentials
// configured it simply reports not ready.
type TwilioNotifier struct {
	client *twilio.RestClient
	to     string
}

func NewTwilioNotifier(cfg config.AppConfig) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		to: cfg.LawyerPhone,
	}
}

func (t *TwilioNotifier) Ready() bool {
	return t.to != "" &&
		config.App.TwilioAccountSID != "" &&
		config.App.TwilioAuthToken != ""
}

func (t *TwilioNotifier) Notify(n Notification) error {
	// WhatsApp when the destination is in E.164 format, plain SMS otherwise.
	to := t.to
	from := config.App.TwilioPhoneNumber
	if strings.HasPrefix(t.to, "+") && config.App.TwilioWhatsAppNumber != "" {
		to = "whatsapp:" + t.to
		from = "whatsapp:" + config.App.TwilioWhatsAppNumber
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(n.Title + "\n" + n.Body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio delivery to %s: %w", t.to, err)
	}
	if resp.Sid == nil {
		return fmt.Errorf("twilio delivery to %s: no message SID returned", t.to)
	}
	return nil
}
