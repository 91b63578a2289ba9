package observability

import (
	"context"

	"github.com/aretw0/deeds/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Reload results used as the "result" label of deeds_tree_reloads_total.
const (
	ReloadOK     = "ok"
	ReloadFailed = "error"
)

// Metrics holds the collectors describing bot activity.
type Metrics struct {
	Replies        *prometheus.CounterVec
	QuestionsSaved prometheus.Counter
	TreeNodes      prometheus.Gauge
	Reloads        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Replies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deeds_replies_total",
				Help: "Total number of replies sent, by kind",
			},
			[]string{"kind"},
		),
		QuestionsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deeds_questions_saved_total",
			Help: "Total number of unanswered questions saved",
		}),
		TreeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deeds_tree_nodes",
			Help: "Number of nodes in the tree currently served",
		}),
		Reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deeds_tree_reloads_total",
				Help: "Tree build attempts, by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Replies, m.QuestionsSaved, m.TreeNodes, m.Reloads)
	}
	return m
}

// Hooks returns engine hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnReply: func(_ context.Context, e *domain.ReplyEvent) {
			m.Replies.WithLabelValues(string(e.Reply.Kind)).Inc()
		},
		OnQuestionSaved: func(context.Context, *domain.QuestionEvent) {
			m.QuestionsSaved.Inc()
		},
		OnReload: func(_ context.Context, e *domain.ReloadEvent) {
			if e.Err != nil {
				m.Reloads.WithLabelValues(ReloadFailed).Inc()
				return
			}
			m.Reloads.WithLabelValues(ReloadOK).Inc()
			m.TreeNodes.Set(float64(e.Nodes))
		},
	}
}
