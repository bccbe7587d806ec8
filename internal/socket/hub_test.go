package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendToOfflineClientIsNotAnError(t *testing.T) {
	h := NewHub()
	assert.NoError(t, h.Send("DRV-NOBODY", []byte("hello")))
}

func TestUnregisterUnknownClient(t *testing.T) {
	h := NewHub()
	// Must not panic or invent state.
	h.Unregister("DRV-NOBODY")
	assert.NoError(t, h.Send("DRV-NOBODY", []byte("hello")))
}
