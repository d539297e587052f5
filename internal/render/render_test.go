package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sigsyaml "sigs.k8s.io/yaml"

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

func TestNewDocument(t *testing.T) {
	t.Parallel()
	g := assembled(t)

	doc, err := NewDocument(g)
	require.NoError(t, err)

	assert.Equal(t, APIVersion, doc.APIVersion)
	assert.Equal(t, "eks-moodle-stack", doc.Stack)
	require.Len(t, doc.Resources, g.Len())
	assert.Len(t, doc.AccessRules, 3)
	assert.Len(t, doc.Outputs, len(stack.OutputKeys()))

	t.Run("resources follow deployment order", func(t *testing.T) {
		t.Parallel()
		first := doc.Resources[0]
		assert.Equal(t, "moodle-vpc", first.Name)
		assert.Equal(t, "Network", first.Kind)
		assert.Equal(t, "10.0.0.0/16", first.Properties["cidr"])
		assert.Equal(t, float64(2), first.Properties["max_azs"])
		assert.Empty(t, first.DependsOn)

		pos := map[string]int{}
		for i, r := range doc.Resources {
			pos[r.Name] = i
		}
		for _, r := range doc.Resources {
			for _, d := range r.DependsOn {
				assert.Less(t, pos[d.Target], pos[r.Name], "%s before %s", d.Target, r.Name)
			}
		}
	})

	t.Run("database references its secret", func(t *testing.T) {
		t.Parallel()
		db, ok := doc.Resource("moodle-db")
		require.True(t, ok)
		assert.Contains(t, db.DependsOn, Dependency{Target: "moodle-db-secret", Label: graph.RefCredentials})
		assert.Equal(t, "mysql", db.Properties["engine"])
		assert.Equal(t, true, db.Properties["multi_az"])
		assert.Equal(t, "eks-moodle-stack", db.Tags["eksstack.io/stack"])

		secret, ok := doc.Resource("moodle-db-secret")
		require.True(t, ok)
		assert.NotContains(t, secret.Properties, "password")
	})

	t.Run("outputs stay unresolved", func(t *testing.T) {
		t.Parallel()
		values := doc.OutputValues()
		assert.Equal(t, "${moodle-db.Endpoint.Address}", values["MOODLE-DATABASE-HOST"])
		assert.Equal(t, "moodledb", values["MOODLE-DATABASE-NAME"])
	})

	t.Run("access rules name both ends", func(t *testing.T) {
		t.Parallel()
		var ports []int
		for _, r := range doc.AccessRules {
			ports = append(ports, r.Port)
			_, ok := doc.Resource(r.From)
			assert.True(t, ok, r.From)
			_, ok = doc.Resource(r.To)
			assert.True(t, ok, r.To)
		}
		assert.ElementsMatch(t, []int{3306, 2049, 6379}, ports)
	})

	_, ok := doc.Resource("missing")
	assert.False(t, ok)
}

func TestNewDocument_Deterministic(t *testing.T) {
	t.Parallel()
	a, err := NewDocument(assembled(t))
	require.NoError(t, err)
	b, err := NewDocument(assembled(t))
	require.NoError(t, err)

	da, err := Marshal(a, FormatYAML)
	require.NoError(t, err)
	db, err := Marshal(b, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))
	assert.Equal(t, Fingerprint(da), Fingerprint(db))
	assert.Len(t, Fingerprint(da), 16)
}

func TestMarshalLoad_RoundTrip(t *testing.T) {
	t.Parallel()
	doc, err := NewDocument(assembled(t))
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			data, err := Marshal(doc, format)
			require.NoError(t, err)

			loaded, err := Load(data)
			require.NoError(t, err)
			assert.Equal(t, doc, loaded)
		})
	}
}

func TestMarshal_UnknownFormat(t *testing.T) {
	t.Parallel()
	_, err := Marshal(&Document{}, Format("xml"))
	require.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty", data: "", wantErr: "document is empty"},
		{name: "wrong version", data: "api_version: v0\nstack: s\n", wantErr: "unsupported document version"},
		{name: "no stack", data: "api_version: eksstack.io/v1\n", wantErr: "no stack name"},
		{name: "malformed", data: "api_version: [", wantErr: "failed to decode document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatYAML},
		{in: "yaml", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "json", want: FormatJSON},
		{in: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAWSAuthConfigMap(t *testing.T) {
	t.Parallel()
	cm, err := AWSAuthConfigMap(assembled(t))
	require.NoError(t, err)

	assert.Equal(t, "aws-auth", cm.Name)
	assert.Equal(t, "kube-system", cm.Namespace)
	assert.Equal(t, "ConfigMap", cm.Kind)
	assert.Equal(t, "eks-moodle-stack", cm.Labels["eksstack.io/stack"])

	var users []userMapping
	require.NoError(t, sigsyaml.Unmarshal([]byte(cm.Data["mapUsers"]), &users))
	assert.Equal(t, []userMapping{{
		UserARN:  "arn:aws:iam::123456789012:user/alice",
		Username: "arn:aws:iam::123456789012:user/alice",
		Groups:   []string{"system:masters"},
	}}, users)

	var roles []roleMapping
	require.NoError(t, sigsyaml.Unmarshal([]byte(cm.Data["mapRoles"]), &roles))
	require.Len(t, roles, 3)
	assert.Equal(t, "${ondemand-mlarge-node-group-role.Arn}", roles[0].RoleARN)
	assert.Equal(t, "system:node:{{EC2PrivateDNSName}}", roles[0].Username)
	assert.Equal(t, []string{"system:bootstrappers", "system:nodes"}, roles[0].Groups)

	out, err := MarshalManifest(cm)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: ConfigMap")
	assert.Contains(t, string(out), "mapUsers: |")
}

func TestAWSAuthConfigMap_NoBindings(t *testing.T) {
	t.Parallel()
	b := graph.NewBuilder("empty")
	_, err := b.AddNode("key", graph.EncryptionKeyProperties{}, nil)
	require.NoError(t, err)
	g, err := b.Finish()
	require.NoError(t, err)

	cm, err := AWSAuthConfigMap(g)
	require.NoError(t, err)
	assert.Empty(t, cm.Data)
}
