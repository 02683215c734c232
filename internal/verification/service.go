// Package verification orchestrates the link flow: request a code, confirm
// it, keep roles in sync, unlink. Per user the flow is a three-state line:
// unlinked (no record), code sent (record, unverified), verified.
package verification

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"github.com/redditdevs/VerifyBot_Go/internal/discord"
	"github.com/redditdevs/VerifyBot_Go/internal/domain"
	"github.com/redditdevs/VerifyBot_Go/internal/logger"
	"github.com/redditdevs/VerifyBot_Go/internal/metrics"
	"github.com/redditdevs/VerifyBot_Go/internal/reddit"
	"github.com/redditdevs/VerifyBot_Go/internal/store"
)

// DirectoryClient is the subset of the Discord client the flow uses.
type DirectoryClient interface {
	GetMemberID(ctx context.Context, username string) (string, error)
	SendVerificationCode(ctx context.Context, redditUsername, memberID, code string) (string, error)
	SendConfirmation(ctx context.Context, memberID, redditUsername string) error
	AssignRoles(ctx context.Context, memberID string, roleIDs []string) (discord.RoleChangeReport, error)
	ReplaceRoles(ctx context.Context, memberID string, newRoleIDs []string) (discord.RoleChangeReport, error)
	RemoveRoles(ctx context.Context, memberID string, roleIDs []string) (discord.RoleChangeReport, error)
	AnnounceVerification(ctx context.Context, redditUsername, discordUsername string, categories []string) error
}

// BeginLinkParams carries everything a code request needs. Selection is
// explicit request state, not read from any stored session. CommentID is the
// Reddit comment the presentation layer is rendered under, kept so a later
// unlink can reply there; it may be empty.
type BeginLinkParams struct {
	UserID          string
	RedditUsername  string
	DiscordUsername string
	CommentID       string
	Selection       domain.RoleSelection
}

// ConfirmCodeParams carries a code submission. Selection is read fresh at
// confirm time, so the user can change categories between request and
// confirmation.
type ConfirmCodeParams struct {
	UserID         string
	RedditUsername string
	Code           string
	Selection      domain.RoleSelection
}

// UpdateRolesParams carries a role update for a verified link.
type UpdateRolesParams struct {
	UserID    string
	Selection domain.RoleSelection
}

// Service defines the verification flow operations.
type Service interface {
	// Status returns the safe record, or domain.ErrRecordNotFound while the
	// user is unlinked.
	Status(ctx context.Context, userID string) (*domain.SafeUserRecord, error)

	// BeginLink resolves the claimed Discord username, DMs a one-time code,
	// and stores a new unverified record. No record is created when the
	// member cannot be found.
	BeginLink(ctx context.Context, params BeginLinkParams) (*domain.SafeUserRecord, error)

	// ConfirmCode checks the submitted code against the stored one (exact,
	// case-sensitive) and on match grants the selected roles and marks the
	// record verified.
	ConfirmCode(ctx context.Context, params ConfirmCodeParams) (*domain.SafeUserRecord, error)

	// UpdateRoles replaces the member's category roles with the fresh
	// selection. Only valid for a verified link.
	UpdateRoles(ctx context.Context, params UpdateRolesParams) (*domain.SafeUserRecord, error)

	// Unlink revokes the stored roles, posts the revocation notice when a
	// comment association exists, and deletes the record. Calling it for an
	// unlinked user is a no-op.
	Unlink(ctx context.Context, userID string) error
}

type service struct {
	store     store.Store
	directory DirectoryClient
	reddit    reddit.Commenter
	settings  discord.SettingsSource
	locks     *userLocks
}

// NewService creates a new verification service.
func NewService(recordStore store.Store, directory DirectoryClient, commenter reddit.Commenter, settings discord.SettingsSource) Service {
	return &service{
		store:     recordStore,
		directory: directory,
		reddit:    commenter,
		settings:  settings,
		locks:     newUserLocks(LockCacheSize, LockTTL),
	}
}

func (s *service) Status(ctx context.Context, userID string) (*domain.SafeUserRecord, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	safe := record.Safe()
	return &safe, nil
}

func (s *service) BeginLink(ctx context.Context, params BeginLinkParams) (*domain.SafeUserRecord, error) {
	log := logger.FromContext(ctx)
	unlock := s.locks.lock(params.UserID)
	defer unlock()

	memberID, err := s.directory.GetMemberID(ctx, params.DiscordUsername)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			metrics.MembersNotFound.Inc()
		}
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	messageID, err := s.directory.SendVerificationCode(ctx, params.RedditUsername, memberID, code)
	if err != nil {
		return nil, err
	}

	record := domain.UserRecord{
		DiscordUsername:    params.DiscordUsername,
		DiscordID:          memberID,
		DiscordMessageID:   messageID,
		CommentID:          params.CommentID,
		VerificationCode:   code,
		VerificationStatus: false,
		Roles:              params.Selection.RoleIDList(s.settings.DiscordSettings().Roles),
	}

	safe, err := s.store.Set(ctx, params.UserID, record)
	if err != nil {
		return nil, err
	}

	metrics.CodesSent.Inc()
	log.Info("Verification code sent",
		"user_id", params.UserID,
		"discord_username", params.DiscordUsername,
		"message_id", messageID)
	return &safe, nil
}

func (s *service) ConfirmCode(ctx context.Context, params ConfirmCodeParams) (*domain.SafeUserRecord, error) {
	log := logger.FromContext(ctx)
	unlock := s.locks.lock(params.UserID)
	defer unlock()

	record, err := s.store.Get(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	// Exact match only. "ABC123" does not verify a stored "abc123".
	if record.VerificationCode == "" || record.VerificationCode != params.Code {
		metrics.InvalidCodes.Inc()
		log.Warn("Verification code rejected", "user_id", params.UserID)
		return nil, domain.ErrInvalidCode
	}

	if err := s.directory.SendConfirmation(ctx, record.DiscordID, params.RedditUsername); err != nil {
		return nil, err
	}

	roles := params.Selection.RoleIDList(s.settings.DiscordSettings().Roles)
	report, err := s.directory.AssignRoles(ctx, record.DiscordID, roles)
	if err != nil {
		// The stored record stays unverified; whatever was granted before
		// the failure stays granted remotely.
		log.Error("Role assignment failed",
			"user_id", params.UserID,
			"granted", strings.Join(report.Granted, ","),
			"failed", report.Failed,
			"error", err)
		return nil, err
	}

	record.Roles = roles
	record.VerificationStatus = true
	record.VerificationCode = ""

	safe, err := s.store.Set(ctx, params.UserID, *record)
	if err != nil {
		return nil, err
	}

	metrics.Verifications.Inc()
	log.Info("User verified",
		"user_id", params.UserID,
		"discord_username", record.DiscordUsername,
		"roles", len(roles))

	// Announcement is best-effort; the link is already verified.
	if err := s.directory.AnnounceVerification(ctx, params.RedditUsername, record.DiscordUsername, params.Selection.Categories()); err != nil {
		log.Warn("Failed to announce verification", "user_id", params.UserID, "error", err)
	}

	return &safe, nil
}

func (s *service) UpdateRoles(ctx context.Context, params UpdateRolesParams) (*domain.SafeUserRecord, error) {
	log := logger.FromContext(ctx)
	unlock := s.locks.lock(params.UserID)
	defer unlock()

	record, err := s.store.Get(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if !record.VerificationStatus {
		return nil, fmt.Errorf("%w: no verified link for user", domain.ErrRecordNotFound)
	}

	roles := params.Selection.RoleIDList(s.settings.DiscordSettings().Roles)
	report, err := s.directory.ReplaceRoles(ctx, record.DiscordID, roles)
	if err != nil {
		log.Error("Role replacement failed",
			"user_id", params.UserID,
			"revoked", strings.Join(report.Revoked, ","),
			"granted", strings.Join(report.Granted, ","),
			"failed", report.Failed,
			"error", err)
		return nil, err
	}

	record.Roles = roles
	record.VerificationStatus = true

	safe, err := s.store.Set(ctx, params.UserID, *record)
	if err != nil {
		return nil, err
	}

	metrics.RoleUpdates.Inc()
	log.Info("Roles updated", "user_id", params.UserID, "roles", len(roles))
	return &safe, nil
}

func (s *service) Unlink(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)
	unlock := s.locks.lock(userID)
	defer unlock()

	record, err := s.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		// Already unlinked. Safe to call twice.
		return nil
	}
	if err != nil {
		return err
	}

	if record.DiscordID != "" {
		if _, err := s.directory.RemoveRoles(ctx, record.DiscordID, record.Roles); err != nil {
			return err
		}
	}

	if record.CommentID != "" {
		if err := s.reddit.SubmitComment(ctx, record.CommentID, RevokedNoticeText); err != nil {
			return err
		}
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}

	metrics.Unlinks.Inc()
	log.Info("Account unlinked", "user_id", userID)
	return nil
}

// generateCode creates a random 6-character uppercase code.
func generateCode() (string, error) {
	bytes := make([]byte, CodeRandomBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Base32 (A-Z, 2-7), first 6 chars.
	code := base32.StdEncoding.EncodeToString(bytes)[:CodeLength]
	return strings.ToUpper(code), nil
}
