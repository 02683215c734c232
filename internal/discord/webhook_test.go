package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
)

func TestAnnounceVerification(t *testing.T) {
	var received discordgo.WebhookParams
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)

	err := client.AnnounceVerification(context.Background(), "reddituser", "discorduser",
		[]string{domain.CategoryModerator, domain.CategoryOfficeHours})
	require.NoError(t, err)

	assert.Equal(t, "u/reddituser verified as discorduser (Moderator, Office Hours)", received.Content)
	// Announcements must not ping anyone
	require.NotNil(t, received.AllowedMentions)
	assert.Empty(t, received.AllowedMentions.Parse)
}

func TestAnnounceVerification_NoCategories(t *testing.T) {
	var received discordgo.WebhookParams
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)

	err := client.AnnounceVerification(context.Background(), "reddituser", "discorduser", nil)
	require.NoError(t, err)
	assert.Equal(t, "u/reddituser verified as discorduser", received.Content)
}

func TestAnnounceVerification_MissingWebhook(t *testing.T) {
	client := NewClient(SettingsFunc(func() Settings {
		return Settings{Token: "test-token", ServerID: "guild-1"}
	}))

	err := client.AnnounceVerification(context.Background(), "reddituser", "discorduser", nil)
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestAnnounceVerification_WebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv)

	err := client.AnnounceVerification(context.Background(), "reddituser", "discorduser", nil)
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
}
