package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "fraud_registry"

var (
	reportsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "reports_submitted_total",
		Help:      "Number of fraud reports submitted by users.",
	})

	reportTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "report_transitions_total",
		Help:      "Number of report status transitions.",
	}, []string{"from", "to", "actor"})

	searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "searches_total",
		Help:      "Number of public searches per searched identity field.",
	}, []string{"field"})

	imagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "images_uploaded_total",
		Help:      "Number of evidence images stored.",
	})

	imageCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "image_cleanup_failures_total",
		Help:      "Image files that could not be removed from storage.",
	})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "logins_total",
		Help:      "Sign-in attempts by kind and result.",
	}, []string{"kind", "result"})
)
