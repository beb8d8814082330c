package metrics

import "github.com/prometheus/client_golang/prometheus"

// Form submission outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the service's collectors. A nil *Metrics records nothing.
type Metrics struct {
	formSubmissions *prometheus.CounterVec
	eventsCreated   prometheus.Counter
	posterUploads   *prometheus.CounterVec
	posterBytes     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		formSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evently",
			Name:      "form_submissions_total",
			Help:      "Create-event form submissions by outcome.",
		}, []string{"outcome"}),
		eventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evently",
			Name:      "events_created_total",
			Help:      "Events stored.",
		}),
		posterUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evently",
			Name:      "poster_uploads_total",
			Help:      "Poster uploads by result.",
		}, []string{"result"}),
		posterBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "evently",
			Name:      "poster_upload_bytes",
			Help:      "Size of stored posters.",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6),
		}),
	}

	reg.MustRegister(m.formSubmissions, m.eventsCreated, m.posterUploads, m.posterBytes)
	return m
}

func (m *Metrics) FormSubmitted(outcome string) {
	if m == nil {
		return
	}
	m.formSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EventCreated() {
	if m == nil {
		return
	}
	m.eventsCreated.Inc()
}

func (m *Metrics) PosterStored(size int) {
	if m == nil {
		return
	}
	m.posterUploads.WithLabelValues("ok").Inc()
	m.posterBytes.Observe(float64(size))
}

func (m *Metrics) PosterFailed() {
	if m == nil {
		return
	}
	m.posterUploads.WithLabelValues("error").Inc()
}
