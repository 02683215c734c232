package discord

import (
	"fmt"
	"strings"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
)

// Settings is the Discord configuration surface for one installation.
type Settings struct {
	Token      string // bot token, app-scoped secret
	ServerID   string // guild id
	ServerName string // public display name of the guild
	Webhook    string // webhook URL for verification announcements
	ChannelID  string // notification channel id
	Roles      domain.RoleIDs
}

// SettingsSource supplies the current Discord settings. It is consulted on
// every outbound call, never cached across calls, so a rotated token or
// changed role id takes effect immediately.
type SettingsSource interface {
	DiscordSettings() Settings
}

// SettingsFunc adapts a plain function to a SettingsSource.
type SettingsFunc func() Settings

func (f SettingsFunc) DiscordSettings() Settings { return f() }

// requireRoleConfig checks the precondition shared by every role-mutating
// operation: server id, token, webhook, and all four category role ids must
// be present. Absence of any is a fatal configuration error.
func requireRoleConfig(s Settings) error {
	var missing []string
	if s.ServerID == "" {
		missing = append(missing, "server id")
	}
	if s.Token == "" {
		missing = append(missing, "token")
	}
	if s.Webhook == "" {
		missing = append(missing, "webhook")
	}
	if s.Roles.Developer == "" {
		missing = append(missing, "developer role id")
	}
	if s.Roles.Moderator == "" {
		missing = append(missing, "moderator role id")
	}
	if s.Roles.OfficeHours == "" {
		missing = append(missing, "office hours role id")
	}
	if s.Roles.Announcements == "" {
		missing = append(missing, "announcements role id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfigMissing, strings.Join(missing, ", "))
	}
	return nil
}
