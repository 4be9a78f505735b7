package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"none"}`)) + "." +
		enc([]byte(payload)) + "." +
		enc([]byte("sig"))
}

func TestPayloadField(t *testing.T) {
	token := makeToken(t, `{"unique_name":"pat@example.com","aud":"api"}`)

	got, err := PayloadField(token, "unique_name")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", got)
}

func TestPayloadFieldMissing(t *testing.T) {
	token := makeToken(t, `{"aud":"api"}`)

	_, err := PayloadField(token, "unique_name")
	assert.Error(t, err)
}

func TestPayloadFieldMalformedToken(t *testing.T) {
	_, err := PayloadField("not-a-jwt", "unique_name")
	assert.Error(t, err)
}
