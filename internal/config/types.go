package config

// Config is the complete input of a stack declaration.
type Config struct {
	// StackName identifies the stack towards the resolver.
	StackName string `yaml:"stack_name" toml:"stack_name" validate:"required,max=128"`

	// App prefixes physical resource names and output names.
	App string `yaml:"app" toml:"app" validate:"required,max=32"`

	// Region is the cloud region the stack is deployed to.
	Region string `yaml:"region" toml:"region" validate:"required"`

	// AdminIdentityARN is the IAM user or role granted cluster administration.
	// The EKSSTACK_ADMIN_ARN environment variable overrides it.
	AdminIdentityARN string `yaml:"admin_identity_arn" toml:"admin_identity_arn" validate:"required"`

	// Tags are added to every declared resource.
	Tags map[string]string `yaml:"tags,omitempty" toml:"tags,omitempty"`

	Network    NetworkConfig    `yaml:"network" toml:"network"`
	Cluster    ClusterConfig    `yaml:"cluster" toml:"cluster"`
	NodePools  []NodePoolConfig `yaml:"node_pools" toml:"node_pools" validate:"required,min=1,dive"`
	Database   DatabaseConfig   `yaml:"database" toml:"database"`
	FileSystem FileSystemConfig `yaml:"file_system" toml:"file_system"`
	Cache      CacheConfig      `yaml:"cache" toml:"cache"`
	Publish    PublishConfig    `yaml:"publish,omitempty" toml:"publish,omitempty"`
}

// NetworkConfig sizes the VPC.
type NetworkConfig struct {
	CIDR   string `yaml:"cidr" toml:"cidr" validate:"required,cidrv4"`
	MaxAZs int    `yaml:"max_azs" toml:"max_azs" validate:"min=1,max=6"`
	// AvailabilityZones pins zone names. When empty, zones are named after
	// the region with letter suffixes.
	AvailabilityZones []string `yaml:"availability_zones,omitempty" toml:"availability_zones,omitempty"`
}

// ClusterConfig defines the Kubernetes control plane.
type ClusterConfig struct {
	Name           string   `yaml:"name" toml:"name" validate:"required,max=100"`
	Version        string   `yaml:"version" toml:"version" validate:"required"`
	EndpointAccess string   `yaml:"endpoint_access" toml:"endpoint_access" validate:"required,oneof=public private public-and-private"`
	AdminGroups    []string `yaml:"admin_groups" toml:"admin_groups" validate:"required,min=1,dive,required"`
}

// NodePoolConfig defines one managed node group.
type NodePoolConfig struct {
	Name          string   `yaml:"name" toml:"name" validate:"required"`
	InstanceTypes []string `yaml:"instance_types" toml:"instance_types" validate:"required,min=1,dive,required"`
	CapacityType  string   `yaml:"capacity_type" toml:"capacity_type" validate:"oneof=ON_DEMAND SPOT"`
	MinSize       int      `yaml:"min_size" toml:"min_size" validate:"min=0"`
	DesiredSize   int      `yaml:"desired_size" toml:"desired_size" validate:"gtefield=MinSize"`
	MaxSize       int      `yaml:"max_size" toml:"max_size" validate:"min=1,gtefield=DesiredSize"`
	DiskSize      int      `yaml:"disk_size" toml:"disk_size" validate:"min=1"`
	// ManagedPolicies are attached to the node role in addition to the
	// worker, CNI and registry policies every node needs.
	ManagedPolicies []string `yaml:"managed_policies,omitempty" toml:"managed_policies,omitempty"`
}

// DatabaseConfig defines the relational database.
type DatabaseConfig struct {
	Name                    string `yaml:"name" toml:"name" validate:"required,max=64"`
	Username                string `yaml:"username" toml:"username" validate:"required,max=16"`
	Engine                  string `yaml:"engine" toml:"engine" validate:"required,oneof=mysql mariadb postgres"`
	EngineVersion           string `yaml:"engine_version" toml:"engine_version" validate:"required"`
	InstanceClass           string `yaml:"instance_class" toml:"instance_class" validate:"required"`
	AllocatedStorage        int    `yaml:"allocated_storage" toml:"allocated_storage" validate:"min=20"`
	// MaxAllocatedStorage caps storage autoscaling. Zero disables it.
	MaxAllocatedStorage     *int   `yaml:"max_allocated_storage,omitempty" toml:"max_allocated_storage,omitempty"`
	StorageType             string `yaml:"storage_type" toml:"storage_type" validate:"oneof=gp2 gp3 io1 standard"`
	MultiAZ                 *bool  `yaml:"multi_az,omitempty" toml:"multi_az,omitempty"`
	AutoMinorVersionUpgrade *bool  `yaml:"auto_minor_version_upgrade,omitempty" toml:"auto_minor_version_upgrade,omitempty"`
	PerformanceInsights     *bool  `yaml:"performance_insights,omitempty" toml:"performance_insights,omitempty"`
	PasswordLength          int    `yaml:"password_length" toml:"password_length" validate:"min=8,max=128"`
	ExcludeCharacters       string `yaml:"exclude_characters" toml:"exclude_characters"`
}

// FileSystemConfig defines the shared file system.
type FileSystemConfig struct {
	LifecyclePolicy  string `yaml:"lifecycle_policy" toml:"lifecycle_policy" validate:"oneof=AFTER_7_DAYS AFTER_14_DAYS AFTER_30_DAYS AFTER_60_DAYS AFTER_90_DAYS"`
	PerformanceMode  string `yaml:"performance_mode" toml:"performance_mode" validate:"oneof=GENERAL_PURPOSE MAX_IO"`
	ThroughputMode   string `yaml:"throughput_mode" toml:"throughput_mode" validate:"oneof=BURSTING PROVISIONED ELASTIC"`
	RemovalPolicy    string `yaml:"removal_policy" toml:"removal_policy" validate:"oneof=DESTROY RETAIN SNAPSHOT"`
	AutomaticBackups *bool  `yaml:"automatic_backups,omitempty" toml:"automatic_backups,omitempty"`
}

// CacheConfig defines the in-memory cache replication group.
type CacheConfig struct {
	Engine                  string `yaml:"engine" toml:"engine" validate:"oneof=redis"`
	NodeType                string `yaml:"node_type" toml:"node_type" validate:"required,startswith=cache."`
	NumCacheClusters        int    `yaml:"num_cache_clusters" toml:"num_cache_clusters" validate:"min=1,max=6"`
	MultiAZ                 *bool  `yaml:"multi_az,omitempty" toml:"multi_az,omitempty"`
	AutomaticFailover       *bool  `yaml:"automatic_failover,omitempty" toml:"automatic_failover,omitempty"`
	AutoMinorVersionUpgrade *bool  `yaml:"auto_minor_version_upgrade,omitempty" toml:"auto_minor_version_upgrade,omitempty"`
	SubnetGroupName         string `yaml:"subnet_group_name" toml:"subnet_group_name" validate:"required,max=255"`
	Description             string `yaml:"description" toml:"description"`
	Port                    int    `yaml:"port" toml:"port" validate:"min=1,max=65535"`
}

// PublishConfig locates the bucket synthesized documents are published to.
type PublishConfig struct {
	Bucket   string `yaml:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty" toml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty" validate:"omitempty,url"`
}

// SpotOnly returns true if no node pool runs on-demand capacity.
func (c *Config) SpotOnly() bool {
	for _, p := range c.NodePools {
		if p.CapacityType != CapacityTypeSpot {
			return false
		}
	}
	return len(c.NodePools) > 0
}
