package observability

import "github.com/prometheus/client_golang/prometheus"

// Interaction kinds and operations used as label values on
// post_interactions_total.
const (
	KindLike       = "like"
	KindAttendance = "attendance"
	KindComment    = "comment"

	OpAdd    = "add"
	OpRemove = "remove"
)

var (
	// postInteractions counts committed interaction changes on posts.
	postInteractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_interactions_total",
			Help: "Committed post interactions by kind and operation.",
		},
		[]string{"kind", "op"},
	)

	// joinRequestTransitions counts committed join-request state changes
	// (created, approved, rejected, cancelled).
	joinRequestTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "join_request_transitions_total",
			Help: "Committed join-request transitions.",
		},
		[]string{"transition"},
	)
)

func init() {
	prometheus.MustRegister(postInteractions, joinRequestTransitions)
}

// RecordInteraction increments post_interactions_total{kind,op}. Call it
// only after the owning transaction has committed.
func RecordInteraction(kind, op string) {
	postInteractions.WithLabelValues(kind, op).Inc()
}

// RecordJoinRequestTransition increments join_request_transitions_total.
func RecordJoinRequestTransition(transition string) {
	joinRequestTransitions.WithLabelValues(transition).Inc()
}
