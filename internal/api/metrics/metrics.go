// Package metrics defines all custom Prometheus metrics for the rewards API.
// It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rewards"

// TasksCreatedTotal counts tasks authored by admins.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// SubmissionsCreatedTotal counts new and resubmitted task submissions.
// Label:
//   - kind: "new" or "resubmit"
var SubmissionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of task submissions, by kind (new/resubmit).",
	},
	[]string{"kind"},
)

// SubmissionsReviewedTotal counts admin review decisions.
// Label:
//   - decision: "approved" or "rejected"
var SubmissionsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_reviewed_total",
		Help:      "Total number of submission reviews, by decision.",
	},
	[]string{"decision"},
)

// PointsCreditedTotal accumulates points granted by approvals.
var PointsCreditedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_credited_total",
		Help:      "Total points credited to users by submission approvals.",
	},
)

// RedemptionsTotal counts redemption flow operations.
// Label:
//   - phase: "quote", "confirm", or "cancel"
var RedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redemptions_total",
		Help:      "Total number of shop redemption operations, by phase.",
	},
	[]string{"phase"},
)
