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

// Business Metrics
var (
	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsHarvested,
			Help: HelpTextCropsHarvested,
		},
		[]string{LabelKind},
	)

	AnimalsFed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAnimalsFed,
			Help: HelpTextAnimalsFed,
		},
		[]string{LabelKind},
	)

	ProductsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProductsCollected,
			Help: HelpTextProductsCollected,
		},
		[]string{LabelKind},
	)

	ItemsSoldToSystem = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSoldToSystem,
			Help: HelpTextItemsSoldToSystem,
		},
		[]string{LabelKind},
	)

	ListingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
		[]string{LabelKind},
	)

	ListingsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsSold,
			Help: HelpTextListingsSold,
		},
		[]string{LabelKind},
	)

	ListingsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsCancelled,
			Help: HelpTextListingsCancelled,
		},
		[]string{LabelKind},
	)

	TasksSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTasksSubmitted,
			Help: HelpTextTasksSubmitted,
		},
	)

	TasksSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksSettled,
			Help: HelpTextTasksSettled,
		},
		[]string{LabelStatus},
	)

	ReviewsCast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReviewsCast,
			Help: HelpTextReviewsCast,
		},
		[]string{LabelDecision},
	)

	CoinsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
		[]string{LabelSource},
	)

	CoinsSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
		[]string{LabelSource},
	)

	TransientConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTransientRetries,
			Help: HelpTextTransientRetries,
		},
	)
)
