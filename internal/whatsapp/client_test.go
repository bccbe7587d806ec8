package whatsapp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenscape-api-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedWithoutCredentials(t *testing.T) {
	c := NewClient(config.TwilioConfig{})
	assert.True(t, c.Simulated())

	// Simulation mode must never fail the caller.
	assert.NoError(t, c.Send("+94771234567", "hello"))
}

func TestSendPostsToTwilio(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotFrom = r.PostForm.Get("From")
		gotTo = r.PostForm.Get("To")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := NewClient(config.TwilioConfig{
		AccountSID:     "AC123",
		AuthToken:      "token",
		WhatsAppNumber: "+1415000000",
	})
	c.apiBase = server.URL
	assert.False(t, c.Simulated())

	require.NoError(t, c.Send("+94771234567", "credentials inside"))
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "whatsapp:+1415000000", gotFrom)
	assert.Equal(t, "whatsapp:+94771234567", gotTo)
	assert.Equal(t, "credentials inside", gotBody)
}

func TestSendSurfacesTwilioErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(config.TwilioConfig{AccountSID: "AC123", AuthToken: "bad"})
	c.apiBase = server.URL

	err := c.Send("+94771234567", "hello")
	assert.Error(t, err)
}

func TestMessageTemplates(t *testing.T) {
	msg := CredentialsMessage("Kasun", "kasun@greenscape.lk", "Xy7pQr2m")
	assert.True(t, strings.Contains(msg, "Kasun"))
	assert.True(t, strings.Contains(msg, "kasun@greenscape.lk"))
	assert.True(t, strings.Contains(msg, "Xy7pQr2m"))

	reject := RejectionMessage("Kasun")
	assert.True(t, strings.Contains(reject, "Kasun"))
	assert.False(t, strings.Contains(reject, "password"))
}
