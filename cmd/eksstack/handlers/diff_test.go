package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/platform/s3"
)

func TestDiff(t *testing.T) {
	t.Run("without a previous document everything is created", func(t *testing.T) {
		env := setupHandlerTest(t)

		require.NoError(t, Diff(context.Background(), "", "", RemoteOptions{}))

		out := env.stdout.String()
		assert.Contains(t, out, "against empty stack")
		assert.Contains(t, out, `create Network "moodle-vpc"`)
		assert.Contains(t, out, "to create, 0 to update, 0 to delete, 0 unchanged")
	})

	t.Run("unchanged stack", func(t *testing.T) {
		env := setupHandlerTest(t)
		require.NoError(t, Synth(context.Background(), SynthOptions{OutputPath: "previous.yaml"}))
		env.reset()

		require.NoError(t, Diff(context.Background(), "", "previous.yaml", RemoteOptions{}))

		out := env.stdout.String()
		assert.Contains(t, out, "against previous.yaml")
		assert.Contains(t, out, "✓ no changes")
		assert.Contains(t, out, "0 to create, 0 to update, 0 to delete")
	})

	t.Run("changed database", func(t *testing.T) {
		env := setupHandlerTest(t)
		require.NoError(t, Synth(context.Background(), SynthOptions{OutputPath: "previous.yaml"}))
		env.reset()
		env.cfg.Database.InstanceClass = "db.m5.xlarge"

		require.NoError(t, Diff(context.Background(), "", "previous.yaml", RemoteOptions{}))

		out := env.stdout.String()
		assert.Contains(t, out, `update Database "moodle-db" ([properties.instance_class])`)
		assert.Contains(t, out, "0 to create, 1 to update, 0 to delete")
		assert.NotContains(t, out, "no changes")
	})

	t.Run("against the published document", func(t *testing.T) {
		env := setupHandlerTest(t)
		useStore(newMemoryStore(), nil)
		require.NoError(t, Publish(context.Background(), "", RemoteOptions{Bucket: "stacks"}, 0))
		env.reset()

		require.NoError(t, Diff(context.Background(), "", "", RemoteOptions{Bucket: "stacks"}))

		key := s3.NewPublisher(newMemoryStore(), "stacks", config.DefaultPublishPrefix).Key(env.cfg.StackName, s3.LatestName)
		out := env.stdout.String()
		assert.Contains(t, out, "against s3://stacks/"+key)
		assert.Contains(t, out, "against s3://stacks/eksstack/eks-moodle-stack/latest.yaml")
		assert.Contains(t, out, "✓ no changes")
	})

	t.Run("nothing published yet", func(t *testing.T) {
		env := setupHandlerTest(t)
		useStore(newMemoryStore(), nil)

		require.NoError(t, Diff(context.Background(), "", "", RemoteOptions{Bucket: "stacks"}))
		assert.Contains(t, env.stdout.String(), "(not published yet)")
	})

	t.Run("unreadable previous document", func(t *testing.T) {
		env := setupHandlerTest(t)
		env.files["previous.yaml"] = []byte("api_version: v0\nstack: x\n")

		err := Diff(context.Background(), "", "previous.yaml", RemoteOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported document version")
	})
}
