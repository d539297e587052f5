package synth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
)

// phaseFuncImpl creates a Phase from a function for testing.
type phaseFuncImpl struct {
	name string
	fn   func(*Context) error
}

func phaseFunc(name string, fn func(*Context) error) Phase {
	return &phaseFuncImpl{name: name, fn: fn}
}

func (p *phaseFuncImpl) Name() string           { return p.name }
func (p *phaseFuncImpl) Run(ctx *Context) error { return p.fn(ctx) }

// recordingMetrics counts what the pipeline reports.
type recordingMetrics struct {
	findings map[string]int
	phases   []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{findings: map[string]int{}}
}

func (m *recordingMetrics) ObserveFinding(severity string) { m.findings[severity]++ }
func (m *recordingMetrics) ObservePhase(phase string, _ float64) {
	m.phases = append(m.phases, phase)
}

func validConfig() *config.Config {
	cfg := config.Default()
	cfg.AdminIdentityARN = "arn:aws:iam::123456789012:user/alice"
	return cfg
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	var executed []string
	ctx := NewContext(context.Background(), validConfig(), NewMockObserver())

	err := RunPhases(ctx, []Phase{
		phaseFunc("validation", func(_ *Context) error { executed = append(executed, "validation"); return nil }),
		phaseFunc("assembly", func(_ *Context) error { executed = append(executed, "assembly"); return nil }),
		phaseFunc("ordering", func(_ *Context) error { executed = append(executed, "ordering"); return nil }),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"validation", "assembly", "ordering"}, executed)
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	var executed []string
	observer := NewMockObserver()
	metrics := newRecordingMetrics()
	ctx := NewContext(context.Background(), validConfig(), observer)
	ctx.Metrics = metrics

	err := RunPhases(ctx, []Phase{
		phaseFunc("validation", func(_ *Context) error { executed = append(executed, "validation"); return nil }),
		phaseFunc("assembly", func(_ *Context) error { return fmt.Errorf("duplicate node") }),
		phaseFunc("ordering", func(_ *Context) error { executed = append(executed, "ordering"); return nil }),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "assembly phase failed")
	assert.Contains(t, err.Error(), "duplicate node")
	assert.Equal(t, []string{"validation"}, executed)
	assert.Equal(t, []string{"validation", "assembly"}, metrics.phases, "failed phases are timed too")
	assert.Len(t, observer.eventsOfType(EventPhaseFailed), 1)
	assert.Len(t, observer.eventsOfType(EventPhaseCompleted), 1)
}

func TestRunPhases_Canceled(t *testing.T) {
	t.Parallel()
	cctx, cancel := context.WithCancel(context.Background())
	var ran bool
	ctx := NewContext(cctx, validConfig(), nil)

	err := RunPhases(ctx, []Phase{
		phaseFunc("first", func(_ *Context) error { cancel(); return nil }),
		phaseFunc("second", func(_ *Context) error { ran = true; return nil }),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "before second phase")
	assert.False(t, ran)
}

func TestRunPhases_LogsPhaseEvents(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := NewContext(context.Background(), validConfig(), observer)

	require.NoError(t, RunPhases(ctx, []Phase{phaseFunc("test", func(_ *Context) error { return nil })}))

	started := observer.eventsOfType(EventPhaseStarted)
	require.Len(t, started, 1)
	assert.Equal(t, "test (1/1)", started[0].Phase)
	assert.Len(t, observer.eventsOfType(EventPhaseCompleted), 1)
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	ctx := NewContext(context.Background(), validConfig(), nil)
	require.NoError(t, RunPhases(ctx, nil))
}

func TestDefaultPhases(t *testing.T) {
	t.Parallel()
	var names []string
	for _, p := range DefaultPhases() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"validation", "assembly", "ordering"}, names)
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	t.Run("produces an ordered graph", func(t *testing.T) {
		t.Parallel()
		observer := NewMockObserver()
		metrics := newRecordingMetrics()

		state, err := Synthesize(context.Background(), validConfig(), observer, metrics)
		require.NoError(t, err)
		require.NotNil(t, state.Graph)

		g := state.Graph
		assert.Equal(t, "eks-moodle-stack", g.Name())
		assert.Len(t, state.Order, g.Len())
		assert.Len(t, observer.eventsOfType(EventResourceDeclared), g.Len())
		assert.Equal(t, "eks-moodle-stack", observer.fields["stack"])
		assert.Equal(t, []string{"validation", "assembly", "ordering"}, metrics.phases)

		vpc, ok := g.Lookup("moodle-vpc")
		require.True(t, ok)
		assert.Equal(t, vpc, state.Order[0])
		assert.Len(t, g.NodesOfKind(graph.KindNodePool), 3)
	})

	t.Run("reports warnings without failing", func(t *testing.T) {
		t.Parallel()
		metrics := newRecordingMetrics()
		state, err := Synthesize(context.Background(), validConfig(), nil, metrics)
		require.NoError(t, err)
		assert.NotEmpty(t, state.Findings)
		for _, f := range state.Findings {
			assert.False(t, f.IsError(), f.Error())
		}
		assert.Equal(t, len(state.Findings), metrics.findings[SeverityWarning])
	})

	t.Run("stops on invalid configuration", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.AdminIdentityARN = ""

		state, err := Synthesize(context.Background(), cfg, nil, nil)
		require.Error(t, err)
		assert.True(t, errdef.IsConfiguration(err))
		assert.Contains(t, err.Error(), "validation phase failed")
		assert.Contains(t, err.Error(), "admin_identity_arn: is required")
		assert.Nil(t, state.Graph)
	})
}

func TestOrderingPhase_RequiresGraph(t *testing.T) {
	t.Parallel()
	ctx := NewContext(context.Background(), validConfig(), nil)
	err := NewOrderingPhase().Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assembly phase must run first")
}
