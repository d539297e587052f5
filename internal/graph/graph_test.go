package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksstack/internal/errdef"
)

// fixture declares a network with one public and one private subnet, a
// cluster, and a database with its secret.
type fixture struct {
	b                       *Builder
	network, public, private Handle
	cluster, secret, db     Handle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{b: NewBuilder("test-stack")}
	var err error

	f.network, err = f.b.AddNode("vpc", NetworkProperties{CIDR: "10.0.0.0/16", MaxAZs: 1}, nil)
	require.NoError(t, err)
	f.public, err = f.b.AddNode("vpc-public-a", SubnetProperties{AvailabilityZone: "us-east-1a", CIDR: "10.0.0.0/17", Exposure: ExposurePublic}, nil)
	require.NoError(t, err)
	f.private, err = f.b.AddNode("vpc-private-a", SubnetProperties{AvailabilityZone: "us-east-1a", CIDR: "10.0.128.0/17", Exposure: ExposurePrivate}, nil)
	require.NoError(t, err)
	require.NoError(t, f.b.Reference(f.public, f.network, RefNetwork))
	require.NoError(t, f.b.Reference(f.private, f.network, RefNetwork))

	f.cluster, err = f.b.AddNode("eks", ClusterProperties{Version: "1.21", EndpointAccess: EndpointPublicAndPrivate}, map[string]string{"team": "platform"})
	require.NoError(t, err)
	require.NoError(t, f.b.Reference(f.cluster, f.public, RefSubnet))
	require.NoError(t, f.b.Reference(f.cluster, f.private, RefSubnet))

	f.secret, err = f.b.AddNode("db-secret", SecretProperties{Username: "dbadmin", PasswordLength: 30}, nil)
	require.NoError(t, err)
	f.db, err = f.b.AddNode("db", DatabaseProperties{Engine: "mysql", EngineVersion: "5.7.34", AllocatedStorage: 30, MaxAllocatedStorage: 300, Port: 3306}, nil)
	require.NoError(t, err)
	require.NoError(t, f.b.Reference(f.db, f.secret, RefCredentials))
	require.NoError(t, f.b.Reference(f.db, f.network, RefNetwork))
	return f
}

func TestBuilder_AddNode(t *testing.T) {
	t.Parallel()

	t.Run("assigns increasing handles starting at one", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder("s")
		h1, err := b.AddNode("a", EncryptionKeyProperties{}, nil)
		require.NoError(t, err)
		h2, err := b.AddNode("b", EncryptionKeyProperties{}, nil)
		require.NoError(t, err)
		assert.Equal(t, Handle(1), h1)
		assert.Equal(t, Handle(2), h2)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder("s")
		_, err := b.AddNode("a", EncryptionKeyProperties{}, nil)
		require.NoError(t, err)
		_, err = b.AddNode("a", RoleProperties{}, nil)
		require.Error(t, err)
		assert.True(t, errdef.IsConfiguration(err))
		assert.Contains(t, err.Error(), "already declared")
	})

	t.Run("rejects empty name and nil properties", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder("s")
		_, err := b.AddNode("", EncryptionKeyProperties{}, nil)
		assert.True(t, errdef.IsConfiguration(err))
		_, err = b.AddNode("x", nil, nil)
		assert.True(t, errdef.IsConfiguration(err))
	})

	t.Run("validates properties", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder("s")
		_, err := b.AddNode("pool", NodePoolProperties{
			InstanceTypes: []string{"m5.large"},
			CapacityType:  CapacityOnDemand,
			MinSize:       3, DesiredSize: 2, MaxSize: 10, DiskSize: 50,
		}, nil)
		require.Error(t, err)
		assert.True(t, errdef.IsConfiguration(err))
		assert.Contains(t, err.Error(), "min size 3 exceeds desired size 2")
	})

	t.Run("copies tags", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder("s")
		tags := map[string]string{"k": "v"}
		h, err := b.AddNode("a", EncryptionKeyProperties{}, tags)
		require.NoError(t, err)
		tags["k"] = "changed"
		n, ok := b.Node(h)
		require.True(t, ok)
		assert.Equal(t, "v", n.Tags["k"])
	})
}

func TestBuilder_ReferenceRejectsUnknownHandles(t *testing.T) {
	t.Parallel()
	b := NewBuilder("s")
	h, err := b.AddNode("a", EncryptionKeyProperties{}, nil)
	require.NoError(t, err)

	assert.True(t, errdef.IsConfiguration(b.Reference(h, Handle(0), RefDependsOn)))
	assert.True(t, errdef.IsConfiguration(b.Reference(h, Handle(42), RefDependsOn)))
	assert.True(t, errdef.IsConfiguration(b.Reference(h, h, RefDependsOn)))
}

func TestBuilder_FinishIsFinal(t *testing.T) {
	t.Parallel()
	b := NewBuilder("s")
	_, err := b.AddNode("a", EncryptionKeyProperties{}, nil)
	require.NoError(t, err)
	_, err = b.Finish()
	require.NoError(t, err)

	_, err = b.AddNode("b", EncryptionKeyProperties{}, nil)
	assert.True(t, errdef.IsConfiguration(err))
	_, err = b.Finish()
	assert.True(t, errdef.IsConfiguration(err))
}

func TestFinish_Order(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	g, err := f.b.Finish()
	require.NoError(t, err)

	order := g.Order()
	require.Len(t, order, g.Len())

	pos := make(map[Handle]int, len(order))
	for i, h := range order {
		pos[h] = i
	}
	for _, e := range g.Edges() {
		assert.Less(t, pos[e.To], pos[e.From], "%s must come before %s", g.MustNode(e.To).Name, g.MustNode(e.From).Name)
	}
	assert.Equal(t, f.network, order[0])
}

func TestFinish_DetectsCycles(t *testing.T) {
	t.Parallel()
	b := NewBuilder("s")
	a, _ := b.AddNode("a", RoleProperties{}, nil)
	c, _ := b.AddNode("b", RoleProperties{}, nil)
	d, _ := b.AddNode("c", RoleProperties{}, nil)
	require.NoError(t, b.DependsOn(a, c))
	require.NoError(t, b.DependsOn(c, d))
	require.NoError(t, b.DependsOn(d, a))

	_, err := b.Finish()
	require.Error(t, err)
	assert.True(t, errdef.IsConfiguration(err))
	assert.Contains(t, err.Error(), "creates a cycle")
}

func TestFinish_SubnetExposure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	group, err := f.b.AddNode("db-subnets", DatabaseSubnetGroupProperties{}, nil)
	require.NoError(t, err)
	require.NoError(t, f.b.Reference(group, f.public, RefSubnet))

	_, err = f.b.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `must use private subnets, got public subnet "vpc-public-a"`)
}

func TestFinish_SubnetEdgeMustTargetSubnet(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	require.NoError(t, f.b.Reference(f.cluster, f.secret, RefSubnet))

	_, err := f.b.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "as a subnet")
}

func TestFinish_DatabaseNeedsExactlyOneSecret(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder("s")
		_, err := b.AddNode("db", DatabaseProperties{Engine: "mysql", EngineVersion: "8.0", AllocatedStorage: 20, Port: 3306}, nil)
		require.NoError(t, err)
		_, err = b.Finish()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one credential secret, got 0")
	})

	t.Run("two", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		other, err := f.b.AddNode("db-secret-2", SecretProperties{Username: "x", PasswordLength: 30}, nil)
		require.NoError(t, err)
		require.NoError(t, f.b.Reference(f.db, other, RefCredentials))
		_, err = f.b.Finish()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "got 2")
	})
}

func TestFinish_DuplicateIdentityBinding(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	props := IdentityBindingProperties{Identity: "arn:aws:iam::123456789012:user/alice", IdentityKind: IdentityUser, Groups: []string{"system:masters"}}
	b1, err := f.b.AddNode("alice-1", props, nil)
	require.NoError(t, err)
	b2, err := f.b.AddNode("alice-2", props, nil)
	require.NoError(t, err)
	require.NoError(t, f.b.Reference(b1, f.cluster, RefCluster))
	require.NoError(t, f.b.Reference(b2, f.cluster, RefCluster))

	_, err = f.b.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is bound twice")
}

func TestGraph_Queries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	require.NoError(t, f.b.AddAccessRule(AccessRule{From: f.cluster, To: f.db, Port: 3306, Description: "From EKS Cluster"}))
	// Duplicate rules collapse.
	require.NoError(t, f.b.AddAccessRule(AccessRule{From: f.cluster, To: f.db, Port: 3306}))
	g, err := f.b.Finish()
	require.NoError(t, err)

	assert.Equal(t, "test-stack", g.Name())
	assert.Equal(t, 6, g.Len())
	assert.Len(t, g.AccessRules(), 1)
	assert.True(t, g.Permits(f.cluster, f.db, 3306))
	assert.False(t, g.Permits(f.db, f.cluster, 3306), "access is directed")
	assert.False(t, g.Permits(f.cluster, f.db, 22), "undeclared ports are denied")

	h, ok := g.Lookup("eks")
	require.True(t, ok)
	assert.Equal(t, f.cluster, h)
	assert.Equal(t, []Handle{f.public, f.private}, g.References(f.cluster, RefSubnet))
	assert.Equal(t, []Handle{f.public, f.private, f.db}, g.Dependents(f.network))
	assert.Len(t, g.NodesOfKind(KindSubnet), 2)

	_, ok = g.Node(Handle(0))
	assert.False(t, ok)
	n, ok := g.Node(f.cluster)
	require.True(t, ok)
	assert.Equal(t, KindCluster, n.Kind())
	assert.Equal(t, "platform", n.Tags["team"])
}

func TestAddAccessRule_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	assert.True(t, errdef.IsConfiguration(f.b.AddAccessRule(AccessRule{From: f.cluster, To: f.cluster, Port: 443})))
	assert.True(t, errdef.IsConfiguration(f.b.AddAccessRule(AccessRule{From: f.cluster, To: f.db, Port: 0})))
	assert.True(t, errdef.IsConfiguration(f.b.AddAccessRule(AccessRule{From: f.cluster, To: Handle(99), Port: 3306})))
}

func TestKind(t *testing.T) {
	t.Parallel()
	for _, k := range Kinds() {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, Kind("Bucket").IsValid())
	assert.True(t, KindDatabase.HasAttribute("Endpoint.Address"))
	assert.False(t, KindDatabase.HasAttribute("Password"))
	assert.Empty(t, KindIdentityBinding.Attributes())
}
