package domain

import "fmt"

// UserRecord is the persisted link between a Reddit user and a Discord
// identity, keyed by Reddit user id. One record per user.
type UserRecord struct {
	DiscordUsername    string   `json:"discordUsername,omitempty"`
	DiscordID          string   `json:"discordId,omitempty"`
	DiscordMessageID   string   `json:"discordMessageId,omitempty"`
	CommentID          string   `json:"commentId,omitempty"`
	VerificationCode   string   `json:"verificationCode,omitempty"`
	VerificationStatus bool     `json:"verificationStatus"`
	Roles              []string `json:"roles"`
}

// SafeUserRecord is the projection of UserRecord exposed to the rendering
// layer. It has no verification code field at all, so the code can never
// leak through serialization.
type SafeUserRecord struct {
	DiscordUsername    string   `json:"discordUsername,omitempty"`
	DiscordID          string   `json:"discordId,omitempty"`
	DiscordMessageID   string   `json:"discordMessageId,omitempty"`
	CommentID          string   `json:"commentId,omitempty"`
	VerificationStatus bool     `json:"verificationStatus"`
	Roles              []string `json:"roles"`
}

// Safe returns the code-stripped projection of the record.
func (r UserRecord) Safe() SafeUserRecord {
	roles := r.Roles
	if roles == nil {
		roles = []string{}
	}
	return SafeUserRecord{
		DiscordUsername:    r.DiscordUsername,
		DiscordID:          r.DiscordID,
		DiscordMessageID:   r.DiscordMessageID,
		CommentID:          r.CommentID,
		VerificationStatus: r.VerificationStatus,
		Roles:              roles,
	}
}

// ValidateRecord checks a record before it is written. Defaults are applied
// in place: a nil role list becomes an empty one.
func ValidateRecord(r *UserRecord) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrValidationFailed)
	}
	if r.Roles == nil {
		r.Roles = []string{}
	}
	return checkInvariants(r)
}

// ValidateStoredRecord checks a record read back from storage. A record that
// fails here means the stored value is malformed, which is fatal rather than
// silently ignored.
func ValidateStoredRecord(r *UserRecord) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrValidationFailed)
	}
	if r.Roles == nil {
		return fmt.Errorf("%w: missing roles field", ErrValidationFailed)
	}
	return checkInvariants(r)
}

func checkInvariants(r *UserRecord) error {
	// A verified record must carry the resolved Discord id.
	if r.VerificationStatus && r.DiscordID == "" {
		return fmt.Errorf("%w: verified record without discord id", ErrValidationFailed)
	}
	return nil
}
