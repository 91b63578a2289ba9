package observability_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/deeds"
	"github.com/aretw0/deeds/pkg/adapters/memory"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := m.Hooks()
	ctx := context.Background()

	h.OnReply(ctx, &domain.ReplyEvent{Reply: domain.Reply{Kind: domain.ReplyAnswer}})
	h.OnReply(ctx, &domain.ReplyEvent{Reply: domain.Reply{Kind: domain.ReplyAnswer}})
	h.OnReply(ctx, &domain.ReplyEvent{Reply: domain.Reply{Kind: domain.ReplyUnknown}})
	h.OnQuestionSaved(ctx, &domain.QuestionEvent{})
	h.OnReload(ctx, &domain.ReloadEvent{Nodes: 12})
	h.OnReload(ctx, &domain.ReloadEvent{Err: errors.New("boom")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Replies.WithLabelValues("answer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replies.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuestionsSaved))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.TreeNodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reloads.WithLabelValues(observability.ReloadOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reloads.WithLabelValues(observability.ReloadFailed)))
}

func TestMetrics_FailedReloadKeepsGauge(t *testing.T) {
	m := observability.NewMetrics(nil)
	h := m.Hooks()

	h.OnReload(context.Background(), &domain.ReloadEvent{Nodes: 5})
	h.OnReload(context.Background(), &domain.ReloadEvent{Err: errors.New("bad yaml")})
	assert.Equal(t, 5.0, testutil.ToFloat64(m.TreeNodes))
}

func TestMetrics_WithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	src := memory.NewSource(`{"FAQ": {"Opening hours": "Nine to six."}}`)
	eng, err := deeds.New("", deeds.WithSource(src), deeds.WithHooks(m.Hooks()))
	require.NoError(t, err)

	_, err = eng.Reply(context.Background(), "c", domain.TextInput("Opening hours"))
	require.NoError(t, err)

	expected := `
# HELP deeds_tree_nodes Number of nodes in the tree currently served
# TYPE deeds_tree_nodes gauge
deeds_tree_nodes 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "deeds_tree_nodes"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replies.WithLabelValues("answer")))
}
