package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	engagementapp "github.com/archerandash/storefront/internal/application/engagement"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/api/subscriptions", map[string]string{"email": "  Reader@Example.com "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first SubscribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Success)
	assert.Equal(t, "Successfully subscribed!", first.Message)
	assert.False(t, first.AlreadySubscribed)
	require.NotNil(t, first.Subscription)
	assert.Equal(t, "reader@example.com", first.Subscription.Email)

	w = env.request(http.MethodPost, "/api/subscriptions", map[string]string{"email": "reader@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var second SubscribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, "You are already subscribed!", second.Message)
	assert.True(t, second.AlreadySubscribed)
}

func TestSubscriptionHandler_RejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"", "no-at-sign", strings.Repeat("a", 250) + "@x.io"} {
		w := env.request(http.MethodPost, "/api/subscriptions", map[string]string{"email": email})
		assert.Equal(t, http.StatusBadRequest, w.Code, email)
		assert.Equal(t, "INVALID_EMAIL", decodeResponse(t, w).Error.Code)
	}
}

func TestSubscriptionHandler_ListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()
	for _, email := range []string{"a@example.com", "b@example.com"} {
		w := env.request(http.MethodPost, "/api/subscriptions", map[string]string{"email": email})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(http.MethodGet, "/api/subscriptions", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	subs := decodeData[[]engagementapp.SubscriptionResponse](t, w.Body.Bytes())
	require.Len(t, subs, 2)

	w = env.request(http.MethodDelete, "/api/subscriptions/"+subs[0].ID.String(), nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeMap(t, w))

	w = env.request(http.MethodDelete, "/api/subscriptions/"+subs[0].ID.String(), nil, session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func contactForm() map[string]string {
	return map[string]string{
		"name":    "Grace Hopper",
		"phone":   "+44 20 7946 0000",
		"email":   "grace@example.com",
		"reason":  "Product Enquiry",
		"message": "Do you ship the A1 canvas framed?",
	}
}

func TestContactHandler_Submit(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/api/contact", contactForm())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Your inquiry has been submitted successfully. We will get back to you soon.", resp.Message)
	_, err := uuid.Parse(resp.ContactID)
	assert.NoError(t, err)
}

func TestContactHandler_SubmitValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(map[string]string)
		code   string
	}{
		{"missing phone", func(f map[string]string) { f["phone"] = " " }, "INVALID_INQUIRY"},
		{"unknown reason", func(f map[string]string) { f["reason"] = "Complaint" }, "INVALID_REASON"},
		{"long message", func(f map[string]string) { f["message"] = strings.Repeat("x", 5001) }, "INVALID_INQUIRY"},
		{"bad email", func(f map[string]string) { f["email"] = "grace" }, "INVALID_EMAIL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := contactForm()
			tt.mutate(form)
			w := env.request(http.MethodPost, "/api/contact", form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestContactHandler_ListAndUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()

	w := env.request(http.MethodPost, "/api/contact", contactForm())
	require.Equal(t, http.StatusCreated, w.Code)
	var submitted ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))

	w = env.request(http.MethodGet, "/api/contact?status=new", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeData[[]engagementapp.InquiryResponse](t, w.Body.Bytes()), 1)

	w = env.request(http.MethodPatch, "/api/contact/"+submitted.ContactID, map[string]string{"status": "replied"}, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "replied", decodeData[engagementapp.InquiryResponse](t, w.Body.Bytes()).Status)

	w = env.request(http.MethodGet, "/api/contact?status=new", nil, session)
	assert.Empty(t, decodeData[[]engagementapp.InquiryResponse](t, w.Body.Bytes()))

	w = env.request(http.MethodPatch, "/api/contact/"+submitted.ContactID, map[string]string{"status": "spam"}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(http.MethodGet, "/api/contact?status=spam", nil, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
