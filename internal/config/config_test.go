package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_KEY", "secret-key")
	t.Setenv(EnvDiscordToken, "test-token")
	t.Setenv(EnvDiscordServerID, "guild-1")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, "verify-bot", cfg.ServiceName)
	assert.Equal(t, "data/records", cfg.StoreDir)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TrustedProxies(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestValidateEnv(t *testing.T) {
	setRequiredEnv(t)
	assert.NoError(t, ValidateEnv())

	t.Setenv(EnvDiscordToken, "")
	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDiscordToken)
}

func TestValidateEnvWithWarnings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvDiscordDevRoleID, "role-dev")
	t.Setenv(EnvDiscordModRoleID, "")
	t.Setenv(EnvDiscordWebhook, "")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)

	joined := ""
	for _, w := range warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, EnvDiscordModRoleID)
	assert.Contains(t, joined, EnvDiscordWebhook)
	assert.NotContains(t, joined, EnvDiscordDevRoleID+" is not set")
}

func TestEnvSettings_ReadAtCallTime(t *testing.T) {
	settings := EnvSettings{}

	t.Setenv(EnvDiscordToken, "token-1")
	assert.Equal(t, "token-1", settings.DiscordSettings().Token)

	// A rotated token is picked up without restarting anything
	t.Setenv(EnvDiscordToken, "token-2")
	assert.Equal(t, "token-2", settings.DiscordSettings().Token)
}

func TestEnvSettings_RoleIDs(t *testing.T) {
	t.Setenv(EnvDiscordDevRoleID, "role-dev")
	t.Setenv(EnvDiscordModRoleID, "role-mod")
	t.Setenv(EnvDiscordOfficeHoursRoleID, "role-oh")
	t.Setenv(EnvDiscordAnnouncementsRoleID, "role-ann")

	roles := EnvSettings{}.DiscordSettings().Roles
	assert.Equal(t, "role-dev", roles.Developer)
	assert.Equal(t, "role-mod", roles.Moderator)
	assert.Equal(t, "role-oh", roles.OfficeHours)
	assert.Equal(t, "role-ann", roles.Announcements)
}
