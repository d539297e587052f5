package synth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/util/ptr"
)

func fieldsOf(findings []ValidationError, severity string) []string {
	var out []string
	for _, f := range findings {
		if f.Severity == severity {
			out = append(out, f.Field)
		}
	}
	return out
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		want   string
	}{
		{
			name:   "single zone",
			modify: func(c *config.Config) { c.Network.MaxAZs = 1 },
			want:   "network.max_azs",
		},
		{
			name:   "public endpoint",
			modify: func(c *config.Config) { c.Cluster.EndpointAccess = "public" },
			want:   "cluster.endpoint_access",
		},
		{
			name: "spot only",
			modify: func(c *config.Config) {
				c.NodePools = c.NodePools[1:]
			},
			want: "node_pools",
		},
		{
			name:   "database without replication",
			modify: func(c *config.Config) { c.Database.MultiAZ = ptr.Bool(false) },
			want:   "database.multi_az",
		},
		{
			name:   "backups disabled",
			modify: func(c *config.Config) { c.FileSystem.AutomaticBackups = ptr.Bool(false) },
			want:   "file_system.automatic_backups",
		},
		{
			name: "single cache node",
			modify: func(c *config.Config) {
				c.Cache.NumCacheClusters = 1
				c.Cache.MultiAZ = ptr.Bool(false)
				c.Cache.AutomaticFailover = ptr.Bool(false)
			},
			want: "cache.num_cache_clusters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.modify(cfg)

			findings := Validate(cfg)
			assert.Empty(t, fieldsOf(findings, SeverityError))
			assert.Contains(t, fieldsOf(findings, SeverityWarning), tt.want)
		})
	}
}

func TestValidate_DefaultsOnlyWarnAboutRemovalPolicy(t *testing.T) {
	t.Parallel()
	findings := Validate(validConfig())
	assert.Equal(t, []ValidationError{{
		Field:    "file_system.removal_policy",
		Message:  "the file system and its data are deleted when the stack is torn down",
		Severity: SeverityWarning,
	}}, findings)
}

func TestValidate_SplitsErrorsByField(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.AdminIdentityARN = ""
	cfg.Cluster.Version = "latest"
	cfg.Cache.NodeType = "r6g.large"

	errs := fieldsOf(Validate(cfg), SeverityError)
	assert.ElementsMatch(t, []string{"admin_identity_arn", "cluster.version", "cache.node_type"}, errs)
}

func TestValidationPhase_Run(t *testing.T) {
	t.Parallel()

	t.Run("records findings and passes with warnings", func(t *testing.T) {
		t.Parallel()
		observer := NewMockObserver()
		metrics := newRecordingMetrics()
		ctx := NewContext(context.Background(), validConfig(), observer)
		ctx.Metrics = metrics

		require.NoError(t, NewValidationPhase().Run(ctx))
		assert.Len(t, ctx.State.Findings, 1)
		assert.Len(t, observer.eventsOfType(EventValidationWarning), 1)
		assert.Equal(t, 1, metrics.findings[SeverityWarning])
	})

	t.Run("fails with a configuration error", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.AdminIdentityARN = "arn:aws:s3:::bucket"
		observer := NewMockObserver()
		ctx := NewContext(context.Background(), cfg, observer)

		err := NewValidationPhase().Run(ctx)
		require.Error(t, err)
		assert.True(t, errdef.IsConfiguration(err))
		assert.Contains(t, err.Error(), "configuration validation failed:\n  [error] admin_identity_arn:")
		assert.NotEmpty(t, observer.eventsOfType(EventValidationError))
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	ve := ValidationError{Field: "database.port", Message: "must be at least 1", Severity: SeverityError}
	assert.Equal(t, "[error] database.port: must be at least 1", ve.Error())
	assert.True(t, ve.IsError())
	assert.False(t, ValidationError{Severity: SeverityWarning}.IsError())
}
