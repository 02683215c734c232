package config

import (
	"os"

	"github.com/redditdevs/VerifyBot_Go/internal/discord"
	"github.com/redditdevs/VerifyBot_Go/internal/domain"
)

// Discord setting environment variable names. The token is app-scoped and
// secret; the rest describe one installation.
const (
	EnvDiscordToken               = "DISCORD_TOKEN"
	EnvDiscordServerID            = "DISCORD_SERVER_ID"
	EnvDiscordServerName          = "DISCORD_SERVER_NAME"
	EnvDiscordWebhook             = "DISCORD_WEBHOOK"
	EnvDiscordChannelID           = "DISCORD_CHANNEL_ID"
	EnvDiscordDevRoleID           = "DISCORD_DEV_ROLE_ID"
	EnvDiscordModRoleID           = "DISCORD_MOD_ROLE_ID"
	EnvDiscordOfficeHoursRoleID   = "DISCORD_OFFICE_HOURS_ROLE_ID"
	EnvDiscordAnnouncementsRoleID = "DISCORD_ANNOUNCEMENTS_ROLE_ID"
)

// EnvSettings reads the Discord settings from the environment on every call,
// satisfying discord.SettingsSource. Settings are deliberately not cached so
// a rotated token or changed role id is picked up without a restart.
type EnvSettings struct{}

func (EnvSettings) DiscordSettings() discord.Settings {
	return discord.Settings{
		Token:      os.Getenv(EnvDiscordToken),
		ServerID:   os.Getenv(EnvDiscordServerID),
		ServerName: os.Getenv(EnvDiscordServerName),
		Webhook:    os.Getenv(EnvDiscordWebhook),
		ChannelID:  os.Getenv(EnvDiscordChannelID),
		Roles: domain.RoleIDs{
			Developer:     os.Getenv(EnvDiscordDevRoleID),
			Moderator:     os.Getenv(EnvDiscordModRoleID),
			OfficeHours:   os.Getenv(EnvDiscordOfficeHoursRoleID),
			Announcements: os.Getenv(EnvDiscordAnnouncementsRoleID),
		},
	}
}
