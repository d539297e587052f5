package stack

import (
	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/labels"
	"github.com/imamik/eksstack/internal/util/naming"
	"github.com/imamik/eksstack/internal/util/ptr"
)

// Cache is a declared cache replication group with its implied resources.
type Cache struct {
	Handle        graph.Handle
	SubnetGroup   graph.Handle
	SecurityGroup graph.Handle
}

// DeclareCache declares a cache replication group in the network's private
// subnets and allows the cluster to reach it on the cache port.
func (s *Stack) DeclareCache(n Network, c Cluster, spec config.CacheConfig) (Cache, error) {
	if err := checkNetwork(n); err != nil {
		return Cache{}, err
	}
	if err := checkCluster(c); err != nil {
		return Cache{}, err
	}

	name := naming.Cache(s.cfg.App)
	groupName := spec.SubnetGroupName
	if groupName == "" {
		groupName = naming.SubnetGroup(name)
	}

	group, err := s.declare(groupName, labels.ComponentCache, graph.CacheSubnetGroupProperties{
		Name:        groupName,
		Description: spec.Description + " subnet group",
	})
	if err != nil {
		return Cache{}, err
	}
	if err := s.refs(group, graph.RefSubnet, n.Private...); err != nil {
		return Cache{}, err
	}

	sg, err := s.securityGroup(naming.SecurityGroup(name), labels.ComponentCache, "Cache security group", n)
	if err != nil {
		return Cache{}, err
	}

	h, err := s.declare(name, labels.ComponentCache, graph.CacheClusterProperties{
		Description:             spec.Description,
		Engine:                  spec.Engine,
		NodeType:                spec.NodeType,
		NumCacheClusters:        spec.NumCacheClusters,
		MultiAZ:                 ptr.Deref(spec.MultiAZ, true),
		AutomaticFailover:       ptr.Deref(spec.AutomaticFailover, true),
		AutoMinorVersionUpgrade: ptr.Deref(spec.AutoMinorVersionUpgrade, true),
		Port:                    spec.Port,
	})
	if err != nil {
		return Cache{}, err
	}
	// The replication group names its subnet group rather than referencing
	// it, so the ordering is declared explicitly.
	if err := s.b.DependsOn(h, group); err != nil {
		return Cache{}, err
	}
	if err := s.b.Reference(h, sg, graph.RefSecurityGroup); err != nil {
		return Cache{}, err
	}
	if err := s.allow(c, h, spec.Port, "cache"); err != nil {
		return Cache{}, err
	}

	return Cache{Handle: h, SubnetGroup: group, SecurityGroup: sg}, nil
}
