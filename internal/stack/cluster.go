package stack

import (
	"regexp"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/arnutil"
	"github.com/imamik/eksstack/internal/util/labels"
	"github.com/imamik/eksstack/internal/util/naming"
)

var versionRegex = regexp.MustCompile(`^[1-9][0-9]*\.[0-9]+$`)

// Managed policies every cluster and node role carries.
var (
	clusterPolicies = []string{"AmazonEKSClusterPolicy"}
	nodePolicies    = []string{
		"AmazonEKSWorkerNodePolicy",
		"AmazonEKS_CNI_Policy",
		"AmazonEC2ContainerRegistryReadOnly",
	}
)

// Node identity mapping required by managed node groups.
const (
	nodeUsername = "system:node:{{EC2PrivateDNSName}}"
)

var nodeGroups = []string{"system:bootstrappers", "system:nodes"}

// Cluster is a declared control plane with its implied resources.
type Cluster struct {
	Handle        graph.Handle
	Name          string
	Key           graph.Handle
	Role          graph.Handle
	SecurityGroup graph.Handle
	Network       Network
}

// NodePool is a declared managed node group and its instance role.
type NodePool struct {
	Handle graph.Handle
	Role   graph.Handle
}

// DeclareCluster declares the control plane in both subnet partitions of
// the network, with no default capacity. When key is the zero handle a
// secrets encryption key is declared as well.
func (s *Stack) DeclareCluster(n Network, version string, access graph.EndpointAccess, key graph.Handle) (Cluster, error) {
	if err := checkNetwork(n); err != nil {
		return Cluster{}, err
	}
	if !versionRegex.MatchString(version) {
		return Cluster{}, errdef.NewConfiguration("cluster version %q must be a major.minor version", version)
	}
	if !access.IsValid() {
		return Cluster{}, errdef.NewConfiguration("unknown endpoint access %q", access)
	}

	name := naming.Cluster(s.cfg.Cluster.Name)

	if !key.Valid() {
		var err error
		key, err = s.declare(naming.ClusterKey(name), labels.ComponentCluster, graph.EncryptionKeyProperties{
			Description:       "Secrets encryption key for EKS cluster " + name,
			EnableKeyRotation: true,
		})
		if err != nil {
			return Cluster{}, err
		}
	} else if node, ok := s.b.Node(key); !ok || node.Kind() != graph.KindEncryptionKey {
		return Cluster{}, errdef.NewConfiguration("cluster %q: handle %d is not an encryption key", name, key)
	}

	role, err := s.declare(naming.ClusterRole(name), labels.ComponentCluster, graph.RoleProperties{
		AssumedBy:       "eks.amazonaws.com",
		ManagedPolicies: append([]string(nil), clusterPolicies...),
	})
	if err != nil {
		return Cluster{}, err
	}
	sg, err := s.securityGroup(naming.SecurityGroup(name), labels.ComponentCluster, "EKS control plane security group", n)
	if err != nil {
		return Cluster{}, err
	}

	h, err := s.declare(name, labels.ComponentCluster, graph.ClusterProperties{
		Version:         version,
		EndpointAccess:  access,
		DefaultCapacity: 0,
	})
	if err != nil {
		return Cluster{}, err
	}

	if err := s.b.Reference(h, key, graph.RefEncryptionKey); err != nil {
		return Cluster{}, err
	}
	if err := s.b.Reference(h, role, graph.RefRole); err != nil {
		return Cluster{}, err
	}
	if err := s.b.Reference(h, sg, graph.RefSecurityGroup); err != nil {
		return Cluster{}, err
	}
	if err := s.refs(h, graph.RefSubnet, n.Public...); err != nil {
		return Cluster{}, err
	}
	if err := s.refs(h, graph.RefSubnet, n.Private...); err != nil {
		return Cluster{}, err
	}

	return Cluster{Handle: h, Name: name, Key: key, Role: role, SecurityGroup: sg, Network: n}, nil
}

// DeclareNodePool declares a managed node group in the cluster's private
// subnets. The pool's instance role carries the node policies plus
// spec.ManagedPolicies and is mapped into the cluster as a node identity.
func (s *Stack) DeclareNodePool(c Cluster, spec config.NodePoolConfig) (NodePool, error) {
	if err := checkCluster(c); err != nil {
		return NodePool{}, err
	}
	if spec.Name == "" {
		return NodePool{}, errdef.NewConfiguration("node pool name is required")
	}

	props := graph.NodePoolProperties{
		InstanceTypes: append([]string(nil), spec.InstanceTypes...),
		CapacityType:  graph.CapacityType(spec.CapacityType),
		MinSize:       spec.MinSize,
		DesiredSize:   spec.DesiredSize,
		MaxSize:       spec.MaxSize,
		DiskSize:      spec.DiskSize,
	}
	// Validated before the role so a rejected pool leaves nothing behind.
	if err := props.Validate(); err != nil {
		return NodePool{}, errdef.NewConfiguration("node pool %q: %w", spec.Name, err)
	}

	for _, name := range []string{spec.Name, naming.NodePoolRole(spec.Name), naming.NodePoolBinding(spec.Name)} {
		if _, taken := s.b.Lookup(name); taken {
			return NodePool{}, errdef.NewConfiguration("node pool %q: node %q is already declared", spec.Name, name)
		}
	}

	policies := append(append([]string(nil), nodePolicies...), spec.ManagedPolicies...)
	role, err := s.b.AddNode(naming.NodePoolRole(spec.Name), graph.RoleProperties{
		AssumedBy:       "ec2.amazonaws.com",
		ManagedPolicies: policies,
	}, s.poolTags(naming.NodePoolRole(spec.Name), spec.Name, graph.KindRole))
	if err != nil {
		return NodePool{}, err
	}

	h, err := s.b.AddNode(spec.Name, props, s.poolTags(spec.Name, spec.Name, graph.KindNodePool))
	if err != nil {
		return NodePool{}, err
	}
	if err := s.b.Reference(h, c.Handle, graph.RefCluster); err != nil {
		return NodePool{}, err
	}
	if err := s.b.Reference(h, role, graph.RefRole); err != nil {
		return NodePool{}, err
	}
	if err := s.refs(h, graph.RefSubnet, c.Network.Private...); err != nil {
		return NodePool{}, err
	}

	if err := s.bindNodeRole(c, spec.Name, role); err != nil {
		return NodePool{}, err
	}
	return NodePool{Handle: h, Role: role}, nil
}

func (s *Stack) poolTags(name, pool string, kind graph.Kind) map[string]string {
	return labels.NewTagBuilder(s.cfg.StackName).
		Merge(s.cfg.Tags).
		WithComponent(labels.ComponentCluster).
		WithKind(string(kind)).
		WithPool(pool).
		WithName(name).
		Build()
}

// bindNodeRole maps a node role into the cluster with the node groups. The
// role ARN is only known after resolution, so the binding refers to it by
// expression.
func (s *Stack) bindNodeRole(c Cluster, pool string, role graph.Handle) error {
	roleNode, _ := s.b.Node(role)
	binding, err := s.declare(naming.NodePoolBinding(pool), labels.ComponentCluster, graph.IdentityBindingProperties{
		Identity:     "${" + roleNode.Name + ".Arn}",
		IdentityKind: graph.IdentityRole,
		Username:     nodeUsername,
		Groups:       append([]string(nil), nodeGroups...),
	})
	if err != nil {
		return err
	}
	if err := s.b.Reference(binding, c.Handle, graph.RefCluster); err != nil {
		return err
	}
	return s.b.Reference(binding, role, graph.RefRole)
}

// BindOperatorIdentity maps an external IAM user or role into the cluster
// with exactly the given groups. The identity keeps the same access it has
// through the provisioning tool, for use with other cluster tooling.
func (s *Stack) BindOperatorIdentity(c Cluster, identityRef string, groups []string) error {
	if err := checkCluster(c); err != nil {
		return err
	}
	identity, err := arnutil.ParseIdentity(identityRef)
	if err != nil {
		return errdef.NewConfiguration("operator identity: %w", err)
	}
	if len(groups) == 0 {
		return errdef.NewConfiguration("operator identity %s: at least one group is required", identity.ARN)
	}
	for _, g := range groups {
		if g == "" {
			return errdef.NewConfiguration("operator identity %s: empty group name", identity.ARN)
		}
	}

	if s.bound[c.Handle] == nil {
		s.bound[c.Handle] = make(map[string]bool)
	}
	if s.bound[c.Handle][identity.ARN] {
		return errdef.NewConfiguration("operator identity %s is already bound to cluster %q", identity.ARN, c.Name)
	}

	binding, err := s.declare(naming.IdentityBinding(c.Name, identity.Kind+identity.Path+identity.Name), labels.ComponentCluster,
		graph.IdentityBindingProperties{
			Identity:     identity.ARN,
			IdentityKind: graph.IdentityKind(identity.Kind),
			Username:     identity.ARN,
			Groups:       append([]string(nil), groups...),
		})
	if err != nil {
		return err
	}
	if err := s.b.Reference(binding, c.Handle, graph.RefCluster); err != nil {
		return err
	}
	s.bound[c.Handle][identity.ARN] = true
	return nil
}
