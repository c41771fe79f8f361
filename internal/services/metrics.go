package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// notificationsCreated counts notification rows written by fan-out.
	// Labels: type (like, comment, comment_reply, new_article)
	notificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "notifications",
		Name:      "created_total",
		Help:      "Notification rows written by fan-out",
	}, []string{"type"})

	// notificationFailures counts recipients whose notification row could not be written.
	// Labels: type
	notificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "notifications",
		Name:      "delivery_failures_total",
		Help:      "Recipients whose notification insert failed",
	}, []string{"type"})

	// notificationsSuppressed counts candidate recipients dropped as the actor or as duplicates.
	// Labels: type
	notificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "notifications",
		Name:      "suppressed_total",
		Help:      "Candidate recipients dropped by self-suppression or de-duplication",
	}, []string{"type"})
)
