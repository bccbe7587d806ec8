// server/internal/whatsapp/client.go
package whatsapp

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"greenscape-api-server/config"

	"github.com/sirupsen/logrus"
)

// Client sends WhatsApp messages through the Twilio REST API. Without
// credentials it runs in simulation mode: messages are logged, not sent.
type Client struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	apiBase    string
}

func NewClient(cfg config.TwilioConfig) *Client {
	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.WhatsAppNumber,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    "https://api.twilio.com",
	}
}

// Simulated reports whether the client has no credentials and will only
// log outgoing messages.
func (c *Client) Simulated() bool {
	return c.accountSID == "" || c.authToken == ""
}

// Send delivers a WhatsApp message to the given phone number. Callers
// treat failures as best-effort: log and move on.
func (c *Client) Send(to, body string) error {
	if c.Simulated() {
		logrus.WithFields(logrus.Fields{"to": to, "body": body}).Info("WhatsApp simulation (no Twilio credentials)")
		return nil
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.apiBase, c.accountSID)
	form := url.Values{}
	form.Set("From", "whatsapp:"+c.from)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}

// CredentialsMessage renders the onboarding message an approved employee
// receives with their generated login.
func CredentialsMessage(name, email, password string) string {
	return fmt.Sprintf(
		"Hi %s, your GreenScape employee account has been approved. Login email: %s, temporary password: %s. Please change it after your first login.",
		name, email, password,
	)
}

// RejectionMessage renders the notice sent when an application is rejected.
func RejectionMessage(name string) string {
	return fmt.Sprintf(
		"Hi %s, thank you for applying to GreenScape. Unfortunately your application was not successful this time.",
		name,
	)
}
