package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatbotEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/chatbot", map[string]string{
		"message": "what are your timings?",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "The canteen is open from 8:00 AM to 6:00 PM, Monday to Saturday.", body["reply"])
}

func TestChatbotEndpointFallback(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/chatbot", map[string]string{
		"message": "tell me a joke",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["reply"], "not sure how to answer")
}

func TestChatbotEndpointRejectsBadBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/chatbot", "not-json-object", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
