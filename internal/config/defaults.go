package config

import (
	"fmt"

	"github.com/imamik/eksstack/internal/util/ptr"
)

// DefaultNodePools returns the node pools of a new stack: one on-demand pool
// that always runs, one spot pool of the same size class, and one larger
// spot pool that is scaled to zero until needed.
func DefaultNodePools() []NodePoolConfig {
	return []NodePoolConfig{
		{
			Name:          "ondemand-mlarge-node-group",
			InstanceTypes: []string{"m5.large"},
			CapacityType:  CapacityTypeOnDemand,
			MinSize:       2,
			DesiredSize:   2,
			MaxSize:       10,
			DiskSize:      DefaultNodeDiskSize,
		},
		{
			Name:          "spot-mlarge-node-group",
			InstanceTypes: []string{"m5.large", "m5a.large", "m4.large"},
			CapacityType:  CapacityTypeSpot,
			MinSize:       2,
			DesiredSize:   2,
			MaxSize:       10,
			DiskSize:      DefaultNodeDiskSize,
		},
		{
			Name:          "spot-mxlarge-node-group",
			InstanceTypes: []string{"m5.xlarge", "m5a.xlarge", "m4.xlarge"},
			CapacityType:  CapacityTypeSpot,
			MinSize:       0,
			DesiredSize:   0,
			MaxSize:       5,
			DiskSize:      DefaultNodeDiskSize,
		},
	}
}

// Default returns a complete configuration with every default applied. The
// administrator identity is left empty; it has no sensible default.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default. Explicitly set
// values, including explicit false for boolean switches, are kept.
func (c *Config) ApplyDefaults() {
	if c.StackName == "" {
		c.StackName = DefaultStackName
	}
	if c.App == "" {
		c.App = DefaultApp
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}

	c.applyNetworkDefaults()
	c.applyClusterDefaults()
	c.applyNodePoolDefaults()
	c.applyDatabaseDefaults()
	c.applyFileSystemDefaults()
	c.applyCacheDefaults()

	if c.Publish.Prefix == "" {
		c.Publish.Prefix = DefaultPublishPrefix
	}
	if c.Publish.Region == "" {
		c.Publish.Region = c.Region
	}
}

func (c *Config) applyNetworkDefaults() {
	if c.Network.CIDR == "" {
		c.Network.CIDR = DefaultNetworkCIDR
	}
	if c.Network.MaxAZs == 0 {
		c.Network.MaxAZs = DefaultMaxAZs
	}
}

func (c *Config) applyClusterDefaults() {
	if c.Cluster.Name == "" {
		c.Cluster.Name = DefaultClusterName
	}
	if c.Cluster.Version == "" {
		c.Cluster.Version = DefaultClusterVersion
	}
	if c.Cluster.EndpointAccess == "" {
		c.Cluster.EndpointAccess = DefaultEndpointAccess
	}
	if len(c.Cluster.AdminGroups) == 0 {
		c.Cluster.AdminGroups = []string{DefaultAdminGroup}
	}
}

func (c *Config) applyNodePoolDefaults() {
	if len(c.NodePools) == 0 {
		c.NodePools = DefaultNodePools()
	}
	for i := range c.NodePools {
		p := &c.NodePools[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("node-group-%d", i+1)
		}
		if p.CapacityType == "" {
			p.CapacityType = CapacityTypeOnDemand
		}
		if p.DiskSize == 0 {
			p.DiskSize = DefaultNodeDiskSize
		}
		if p.ManagedPolicies == nil {
			p.ManagedPolicies = []string{DefaultNodePolicy}
		}
	}
}

func (c *Config) applyDatabaseDefaults() {
	db := &c.Database
	if db.Name == "" {
		db.Name = DefaultDatabaseName
	}
	if db.Username == "" {
		db.Username = DefaultDatabaseUsername
	}
	if db.Engine == "" {
		db.Engine = DefaultDatabaseEngine
	}
	if db.EngineVersion == "" {
		db.EngineVersion = DefaultDatabaseEngineVersion
	}
	if db.InstanceClass == "" {
		db.InstanceClass = DefaultDatabaseInstanceClass
	}
	if db.AllocatedStorage == 0 {
		db.AllocatedStorage = DefaultAllocatedStorage
	}
	if db.MaxAllocatedStorage == nil {
		db.MaxAllocatedStorage = ptr.Int(max(DefaultMaxAllocatedStorage, db.AllocatedStorage))
	}
	if db.StorageType == "" {
		db.StorageType = DefaultStorageType
	}
	if db.MultiAZ == nil {
		db.MultiAZ = ptr.Bool(true)
	}
	if db.AutoMinorVersionUpgrade == nil {
		db.AutoMinorVersionUpgrade = ptr.Bool(true)
	}
	if db.PerformanceInsights == nil {
		db.PerformanceInsights = ptr.Bool(true)
	}
	if db.PasswordLength == 0 {
		db.PasswordLength = DefaultPasswordLength
	}
	if db.ExcludeCharacters == "" {
		db.ExcludeCharacters = DefaultExcludeCharacters
	}
}

func (c *Config) applyFileSystemDefaults() {
	fs := &c.FileSystem
	if fs.LifecyclePolicy == "" {
		fs.LifecyclePolicy = DefaultLifecyclePolicy
	}
	if fs.PerformanceMode == "" {
		fs.PerformanceMode = DefaultPerformanceMode
	}
	if fs.ThroughputMode == "" {
		fs.ThroughputMode = DefaultThroughputMode
	}
	if fs.RemovalPolicy == "" {
		fs.RemovalPolicy = DefaultRemovalPolicy
	}
	if fs.AutomaticBackups == nil {
		fs.AutomaticBackups = ptr.Bool(true)
	}
}

func (c *Config) applyCacheDefaults() {
	cc := &c.Cache
	if cc.Engine == "" {
		cc.Engine = DefaultCacheEngine
	}
	if cc.NodeType == "" {
		cc.NodeType = DefaultCacheNodeType
	}
	if cc.NumCacheClusters == 0 {
		cc.NumCacheClusters = DefaultNumCacheClusters
	}
	if cc.MultiAZ == nil {
		cc.MultiAZ = ptr.Bool(true)
	}
	if cc.AutomaticFailover == nil {
		cc.AutomaticFailover = ptr.Bool(true)
	}
	if cc.AutoMinorVersionUpgrade == nil {
		cc.AutoMinorVersionUpgrade = ptr.Bool(true)
	}
	if cc.SubnetGroupName == "" {
		cc.SubnetGroupName = DefaultCacheSubnetGroupName
	}
	if cc.Description == "" {
		cc.Description = DefaultCacheDescription
	}
	if cc.Port == 0 {
		cc.Port = DefaultCachePort
	}
}
