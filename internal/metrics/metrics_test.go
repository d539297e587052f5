package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/stack"
)

func assembled(t *testing.T) *graph.Graph {
	t.Helper()
	cfg := config.Default()
	cfg.AdminIdentityARN = "arn:aws:iam::123456789012:user/alice"
	g, err := stack.Assemble(cfg)
	require.NoError(t, err)
	return g
}

func TestObserveFinding(t *testing.T) {
	t.Parallel()
	r := New()
	r.ObserveFinding("warning")
	r.ObserveFinding("warning")
	r.ObserveFinding("error")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.findings.WithLabelValues("warning")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.findings.WithLabelValues("error")))
}

func TestObservePhase(t *testing.T) {
	t.Parallel()
	r := New()
	r.ObservePhase("validation", 0.001)
	r.ObservePhase("assembly", 0.002)

	assert.Equal(t, 2, testutil.CollectAndCount(r.phaseDuration))
}

func TestObserveGraph(t *testing.T) {
	t.Parallel()
	g := assembled(t)
	r := New()
	r.ObserveGraph(g)

	assert.Equal(t, float64(3), testutil.ToFloat64(r.resources.WithLabelValues(g.Name(), string(graph.KindNodePool))))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.resources.WithLabelValues(g.Name(), string(graph.KindDatabase))))
	assert.Equal(t, float64(3), testutil.ToFloat64(r.accessRules))
	assert.Equal(t, float64(len(stack.OutputKeys())), testutil.ToFloat64(r.outputs))
	assert.Equal(t, len(graph.Kinds()), testutil.CollectAndCount(r.resources))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	r := New()
	r.ObserveGraph(assembled(t))
	r.ObserveFinding("warning")

	path := filepath.Join(t.TempDir(), "eksstack.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `eksstack_graph_resources{kind="Cluster",stack="eks-moodle-stack"} 1`)
	assert.Contains(t, out, "eksstack_graph_access_rules 3")
	assert.Contains(t, out, `eksstack_validation_findings_total{severity="warning"} 1`)
	assert.True(t, strings.HasPrefix(out, "# HELP"))

	err = r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
}

func TestGatherer(t *testing.T) {
	t.Parallel()
	r := New()
	r.ObserveFinding("error")
	n, err := testutil.GatherAndCount(r.Gatherer(), "eksstack_validation_findings_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
