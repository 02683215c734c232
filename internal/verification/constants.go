package verification

import "time"

const (
	// CodeLength is the number of characters in a verification code
	CodeLength = 6

	// CodeRandomBytes is the number of random bytes behind each code
	CodeRandomBytes = 4
)

const (
	// LockCacheSize bounds the per-user lock cache
	LockCacheSize = 1024

	// LockTTL is how long an idle per-user lock stays cached
	LockTTL = 30 * time.Minute
)

// RevokedNoticeText is the comment posted under the associated Reddit
// comment when a link is unlinked.
const RevokedNoticeText = "This link has been revoked!"
