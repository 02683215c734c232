package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Discord client metrics
var (
	DiscordAPICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordAPICalls,
			Help: HelpTextDiscordAPICalls,
		},
		[]string{LabelOp, LabelStatus},
	)

	RolesGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRolesGranted,
			Help: HelpTextRolesGranted,
		},
	)

	RolesRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRolesRevoked,
			Help: HelpTextRolesRevoked,
		},
	)
)

// Verification flow metrics
var (
	CodesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCodesSent,
			Help: HelpTextCodesSent,
		},
	)

	Verifications = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameVerifications,
			Help: HelpTextVerifications,
		},
	)

	RoleUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoleUpdates,
			Help: HelpTextRoleUpdates,
		},
	)

	Unlinks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUnlinks,
			Help: HelpTextUnlinks,
		},
	)

	InvalidCodes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInvalidCodes,
			Help: HelpTextInvalidCodes,
		},
	)

	MembersNotFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMembersNotFound,
			Help: HelpTextMembersNotFound,
		},
	)
)
