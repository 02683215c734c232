package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
	"github.com/redditdevs/VerifyBot_Go/internal/logger"
	"github.com/redditdevs/VerifyBot_Go/internal/metrics"
)

// APIPrefix is the Discord REST API base URL.
const APIPrefix = "https://discord.com/api/v10"

// Client handles communication with the Discord REST API. Settings (token,
// guild id, role ids) are read from the source at call time, not cached.
type Client struct {
	BaseURL  string
	Client   *http.Client
	Settings SettingsSource
}

// NewClient creates a new Discord REST client.
func NewClient(settings SettingsSource) *Client {
	return &Client{
		BaseURL: APIPrefix,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		Settings: settings,
	}
}

// RoleChangeReport records which role mutations succeeded before a
// sequential loop stopped. Loops are intentionally sequential (role
// endpoints are rate-limited per guild) and never roll back, so on failure
// the report is the caller's only view of the partial state.
type RoleChangeReport struct {
	Granted []string `json:"granted"`
	Revoked []string `json:"revoked"`
	Failed  string   `json:"failed,omitempty"`
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s", c.BaseURL, path)
}

// do performs a single authenticated request. No retries: a transport or
// server failure surfaces immediately as the handler-aborting error.
func (c *Client) do(ctx context.Context, op, token, method, url string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bot "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.DiscordAPICalls.WithLabelValues(op, "transport_error").Inc()
		logger.FromContext(ctx).Error("Discord request failed", "op", op, "error", err)
		return nil, &domain.RemoteError{Op: op}
	}

	metrics.DiscordAPICalls.WithLabelValues(op, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	return resp, nil
}

// GetDMChannel opens (or fetches the existing) DM channel with a member.
func (c *Client) GetDMChannel(ctx context.Context, memberID string) (string, error) {
	const op = "create dm channel"
	settings := c.Settings.DiscordSettings()

	payload := map[string]string{"recipient_id": memberID}
	resp, err := c.do(ctx, op, settings.Token, http.MethodPost, c.endpoint("users/@me/channels"), payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.RemoteError{Op: op, Status: resp.StatusCode}
	}

	var channel discordgo.Channel
	if err := json.NewDecoder(resp.Body).Decode(&channel); err != nil {
		return "", fmt.Errorf("failed to decode channel: %w", err)
	}
	return channel.ID, nil
}

// sendDM posts a message to the member's DM channel with mention parsing
// restricted to user mentions, returning the created message.
func (c *Client) sendDM(ctx context.Context, op, memberID, content string) (*discordgo.Message, error) {
	settings := c.Settings.DiscordSettings()

	channelID, err := c.GetDMChannel(ctx, memberID)
	if err != nil {
		return nil, err
	}

	payload := &discordgo.MessageSend{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
		},
	}

	resp, err := c.do(ctx, op, settings.Token, http.MethodPost, c.endpoint(fmt.Sprintf("channels/%s/messages", channelID)), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.RemoteError{Op: op, Status: resp.StatusCode}
	}

	var message discordgo.Message
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return &message, nil
}

// SendConfirmation DMs the member that their Reddit account is verified.
// The caller gets no message id back.
func (c *Client) SendConfirmation(ctx context.Context, memberID, redditUsername string) error {
	_, err := c.sendDM(ctx, "send confirmation", memberID, fmt.Sprintf("Verified as u/%s!", redditUsername))
	return err
}

// SendVerificationCode DMs the one-time code to the member and returns the
// platform-assigned message id for traceability.
func (c *Client) SendVerificationCode(ctx context.Context, redditUsername, memberID, code string) (string, error) {
	content := fmt.Sprintf("Attempting to verify u/%s as <@%s>. Your code is %s", redditUsername, memberID, code)
	message, err := c.sendDM(ctx, "send verification code", memberID, content)
	if err != nil {
		return "", err
	}
	return message.ID, nil
}

// GetMemberID searches guild members for the given username and returns the
// id of the first case-insensitive exact match. A failed search call is
// logged and treated the same as no match.
func (c *Client) GetMemberID(ctx context.Context, username string) (string, error) {
	const op = "search guild members"
	log := logger.FromContext(ctx)
	settings := c.Settings.DiscordSettings()

	path := fmt.Sprintf("guilds/%s/members/search?query=%s", settings.ServerID, url.QueryEscape(username))
	resp, err := c.do(ctx, op, settings.Token, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		log.Error("Member search failed", "username", username, "error", err)
		return "", domain.ErrMemberNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("Member search returned non-success status", "username", username, "status", resp.StatusCode)
		return "", domain.ErrMemberNotFound
	}

	var members []*discordgo.Member
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		log.Error("Failed to decode member search response", "error", err)
		return "", domain.ErrMemberNotFound
	}

	for _, member := range members {
		if member.User == nil {
			continue
		}
		if strings.EqualFold(member.User.Username, username) {
			return member.User.ID, nil
		}
	}

	log.Warn("No member matched username", "username", username, "candidates", len(members))
	return "", domain.ErrMemberNotFound
}

// AssignRoles grants each role sequentially via idempotent add-role calls.
// It stops at the first non-success response, leaving already-granted roles
// in place; the report shows how far it got.
func (c *Client) AssignRoles(ctx context.Context, memberID string, roleIDs []string) (RoleChangeReport, error) {
	report := RoleChangeReport{Granted: []string{}, Revoked: []string{}}

	settings := c.Settings.DiscordSettings()
	if err := requireRoleConfig(settings); err != nil {
		return report, err
	}

	if err := c.grantRoles(ctx, settings, memberID, roleIDs, &report); err != nil {
		return report, err
	}
	return report, nil
}

// ReplaceRoles revokes all four configured category roles unconditionally
// (removing an unheld role is a no-op on Discord), then grants the new set.
// Any single failure aborts the remaining steps; partial state can persist.
func (c *Client) ReplaceRoles(ctx context.Context, memberID string, newRoleIDs []string) (RoleChangeReport, error) {
	report := RoleChangeReport{Granted: []string{}, Revoked: []string{}}

	settings := c.Settings.DiscordSettings()
	if err := requireRoleConfig(settings); err != nil {
		return report, err
	}

	if err := c.revokeRoles(ctx, settings, memberID, settings.Roles.All(), &report); err != nil {
		return report, err
	}
	if err := c.grantRoles(ctx, settings, memberID, newRoleIDs, &report); err != nil {
		return report, err
	}
	return report, nil
}

// RemoveRoles revokes exactly the given roles sequentially, aborting on the
// first failure.
func (c *Client) RemoveRoles(ctx context.Context, memberID string, roleIDs []string) (RoleChangeReport, error) {
	report := RoleChangeReport{Granted: []string{}, Revoked: []string{}}

	settings := c.Settings.DiscordSettings()
	if err := requireRoleConfig(settings); err != nil {
		return report, err
	}

	if err := c.revokeRoles(ctx, settings, memberID, roleIDs, &report); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Client) grantRoles(ctx context.Context, settings Settings, memberID string, roleIDs []string, report *RoleChangeReport) error {
	const op = "assign role"
	for _, roleID := range roleIDs {
		target := c.endpoint(fmt.Sprintf("guilds/%s/members/%s/roles/%s", settings.ServerID, memberID, roleID))
		resp, err := c.do(ctx, op, settings.Token, http.MethodPut, target, nil)
		if err != nil {
			report.Failed = roleID
			return err
		}
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			report.Failed = roleID
			return &domain.RemoteError{Op: op, Status: resp.StatusCode}
		}
		report.Granted = append(report.Granted, roleID)
		metrics.RolesGranted.Inc()
	}
	return nil
}

func (c *Client) revokeRoles(ctx context.Context, settings Settings, memberID string, roleIDs []string, report *RoleChangeReport) error {
	const op = "revoke role"
	for _, roleID := range roleIDs {
		target := c.endpoint(fmt.Sprintf("guilds/%s/members/%s/roles/%s", settings.ServerID, memberID, roleID))
		resp, err := c.do(ctx, op, settings.Token, http.MethodDelete, target, nil)
		if err != nil {
			report.Failed = roleID
			return err
		}
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			report.Failed = roleID
			return &domain.RemoteError{Op: op, Status: resp.StatusCode}
		}
		report.Revoked = append(report.Revoked, roleID)
		metrics.RolesRevoked.Inc()
	}
	return nil
}
