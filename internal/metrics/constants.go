package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameDiscordAPICalls  = "discord_api_calls_total"
	MetricNameCodesSent        = "verification_codes_sent_total"
	MetricNameVerifications    = "verifications_completed_total"
	MetricNameRoleUpdates      = "role_updates_total"
	MetricNameUnlinks          = "unlinks_total"
	MetricNameRolesGranted     = "roles_granted_total"
	MetricNameRolesRevoked     = "roles_revoked_total"
	MetricNameInvalidCodes     = "invalid_codes_total"
	MetricNameMembersNotFound  = "members_not_found_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextDiscordAPICalls = "Total number of outbound Discord API calls"
	HelpTextCodesSent       = "Total number of verification codes sent"
	HelpTextVerifications   = "Total number of completed verifications"
	HelpTextRoleUpdates     = "Total number of role update operations"
	HelpTextUnlinks         = "Total number of unlinked accounts"
	HelpTextRolesGranted    = "Total number of roles granted"
	HelpTextRolesRevoked    = "Total number of roles revoked"
	HelpTextInvalidCodes    = "Total number of rejected verification codes"
	HelpTextMembersNotFound = "Total number of member searches with no match"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelOp     = "op"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
