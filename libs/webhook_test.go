package libs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := []byte("whsec_test")
	body := []byte(`{"session_id":"abc","status":"completed"}`)
	now := time.Unix(1_700_000_000, 0)
	header := SignatureHeaderValue(secret, now, body)

	assert.NoError(t, VerifySignature(secret, header, body, now.Add(time.Minute)))
	assert.ErrorIs(t, VerifySignature([]byte("other"), header, body, now), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(secret, header, []byte(`{}`), now), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(secret, header, body, now.Add(10*time.Minute)), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(secret, "", body, now), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(secret, "t=abc,v1=00", body, now), ErrInvalidSignature)
}
