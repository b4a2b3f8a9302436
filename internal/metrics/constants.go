package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCropsHarvested    = "crops_harvested_total"
	MetricNameAnimalsFed        = "animals_fed_total"
	MetricNameProductsCollected = "products_collected_total"
	MetricNameItemsSoldToSystem = "items_sold_to_system_total"
	MetricNameListingsCreated   = "listings_created_total"
	MetricNameListingsSold      = "listings_sold_total"
	MetricNameListingsCancelled = "listings_cancelled_total"
	MetricNameTasksSubmitted    = "stitch_tasks_submitted_total"
	MetricNameTasksSettled      = "stitch_tasks_settled_total"
	MetricNameReviewsCast       = "stitch_reviews_cast_total"
	MetricNameCoinsEarned       = "coins_earned_total"
	MetricNameCoinsSpent        = "coins_spent_total"
	MetricNameTransientRetries  = "transient_conflicts_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCropsHarvested    = "Total crop units credited to pantries"
	HelpTextAnimalsFed        = "Total feed-mode conversions performed"
	HelpTextProductsCollected = "Total timed-mode products collected"
	HelpTextItemsSoldToSystem = "Total items sold to the system buyback"
	HelpTextListingsCreated   = "Total market listings created"
	HelpTextListingsSold      = "Total market listings sold"
	HelpTextListingsCancelled = "Total market listings cancelled"
	HelpTextTasksSubmitted    = "Total stitch tasks submitted for review"
	HelpTextTasksSettled      = "Total stitch tasks settled by status"
	HelpTextReviewsCast       = "Total stitch reviews cast"
	HelpTextCoinsEarned       = "Total coins credited to player balances"
	HelpTextCoinsSpent        = "Total coins debited from player balances"
	HelpTextTransientRetries  = "Total transactions aborted by transient conflicts"
)

// Metric label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelKind     = "kind"
	LabelDecision = "decision"
	LabelSource   = "source"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
