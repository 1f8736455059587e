// Package metrics defines and registers all custom Prometheus metrics for
// the review platform. It is the single source of truth for metric names,
// labels, and help strings; registration happens implicitly via promauto at
// package initialisation, and the /metrics endpoint is served through the
// echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reviews"

// ── Authentication metrics ────────────────────────────────────────────────────

// OTPRequestsTotal counts successfully issued one-time codes.
// Label:
//   - flow: "user" or "admin"
var OTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_requests_total",
		Help:      "Total number of OTP codes issued and dispatched, by flow.",
	},
	[]string{"flow"},
)

// OTPVerificationsTotal counts OTP verification attempts.
// Labels:
//   - flow: "user" or "admin"
//   - result: "ok" or "fail"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts newly created reviews.
// Label:
//   - sentiment: the label assigned by the analysis service
var ReviewsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of reviews created, by analyzed sentiment.",
	},
	[]string{"sentiment"},
)

// SpamMarksTotal counts moderation decisions.
// Label:
//   - spam: "true" (marked) or "false" (unmarked)
var SpamMarksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spam_marks_total",
		Help:      "Total number of admin spam-flag changes, by new value.",
	},
	[]string{"spam"},
)

// SummaryFallbacksTotal counts admin summaries served from the degraded
// locally-computed path because the analysis service was unreachable.
var SummaryFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_fallbacks_total",
		Help:      "Total number of admin summaries computed locally after an analysis-service failure.",
	},
)
