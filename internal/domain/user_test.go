package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafe_StripsVerificationCode(t *testing.T) {
	record := UserRecord{
		DiscordUsername:    "someuser",
		DiscordID:          "111222333",
		DiscordMessageID:   "444555666",
		CommentID:          "t1_abc",
		VerificationCode:   "ABC123",
		VerificationStatus: false,
		Roles:              []string{"role-dev"},
	}

	safe := record.Safe()

	assert.Equal(t, record.DiscordUsername, safe.DiscordUsername)
	assert.Equal(t, record.DiscordID, safe.DiscordID)
	assert.Equal(t, record.DiscordMessageID, safe.DiscordMessageID)
	assert.Equal(t, record.CommentID, safe.CommentID)
	assert.Equal(t, record.Roles, safe.Roles)

	// The code must not survive serialization of the safe projection
	raw, err := json.Marshal(safe)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "ABC123")
	assert.NotContains(t, string(raw), "verificationCode")
}

func TestSafe_NilRolesBecomeEmptyList(t *testing.T) {
	safe := UserRecord{DiscordUsername: "someuser"}.Safe()

	assert.NotNil(t, safe.Roles)
	assert.Empty(t, safe.Roles)

	raw, err := json.Marshal(safe)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"roles":[]`)
}

func TestValidateRecord(t *testing.T) {
	t.Run("nil record fails", func(t *testing.T) {
		err := ValidateRecord(nil)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("nil roles defaulted to empty list", func(t *testing.T) {
		record := UserRecord{DiscordUsername: "someuser"}
		err := ValidateRecord(&record)
		assert.NoError(t, err)
		assert.NotNil(t, record.Roles)
	})

	t.Run("verified record requires discord id", func(t *testing.T) {
		record := UserRecord{VerificationStatus: true}
		err := ValidateRecord(&record)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestValidateStoredRecord(t *testing.T) {
	t.Run("missing roles is fatal on read", func(t *testing.T) {
		record := UserRecord{DiscordUsername: "someuser"}
		err := ValidateStoredRecord(&record)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("valid stored record passes", func(t *testing.T) {
		record := UserRecord{
			DiscordUsername:    "someuser",
			DiscordID:          "111",
			VerificationStatus: true,
			Roles:              []string{},
		}
		assert.NoError(t, ValidateStoredRecord(&record))
	})
}
