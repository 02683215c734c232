package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
	"github.com/redditdevs/VerifyBot_Go/internal/logger"
)

// AnnounceVerification posts a message to the configured webhook noting that
// a Reddit user verified their Discord account and which categories they
// picked. Callers treat this as best-effort: the member is already verified
// by the time it runs.
func (c *Client) AnnounceVerification(ctx context.Context, redditUsername, discordUsername string, categories []string) error {
	const op = "announce verification"
	settings := c.Settings.DiscordSettings()
	if settings.Webhook == "" {
		return fmt.Errorf("%w: webhook", domain.ErrConfigMissing)
	}

	titler := cases.Title(language.English)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, titler.String(category))
	}

	content := fmt.Sprintf("u/%s verified as %s", redditUsername, discordUsername)
	if len(names) > 0 {
		content = fmt.Sprintf("%s (%s)", content, strings.Join(names, ", "))
	}

	payload := &discordgo.WebhookParams{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}

	resp, err := c.do(ctx, op, settings.Token, http.MethodPost, settings.Webhook, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.RemoteError{Op: op, Status: resp.StatusCode}
	}

	logger.FromContext(ctx).Info("Verification announced", "reddit_username", redditUsername)
	return nil
}
