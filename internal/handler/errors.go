package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Flow error messages (user-facing toasts in the presentation layer)
	ErrMsgMemberNotFound = "User does not exist on server"
	ErrMsgInvalidCode    = "Invalid verification code"
	ErrMsgNoLinkedUser   = "No linked account"

	// Infrastructure error messages
	ErrMsgConfigIncomplete = "Discord configuration incomplete"
	ErrMsgDiscordFailed    = "Discord request failed"
	ErrMsgInternal         = "Internal error"
)

// Success messages for API responses
const (
	MsgUnlinked = "Account unlinked"
)
