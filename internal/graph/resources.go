package graph

import (
	"errors"
	"fmt"
)

// Properties is the typed payload of a node. Each resource kind has exactly
// one properties type.
type Properties interface {
	Kind() Kind
}

// validatable is implemented by properties that carry their own invariants.
type validatable interface {
	Validate() error
}

// Exposure describes whether a subnet is reachable from the internet.
type Exposure string

const (
	// ExposurePublic subnets route through an internet gateway.
	ExposurePublic Exposure = "public"
	// ExposurePrivate subnets egress through a NAT gateway only.
	ExposurePrivate Exposure = "private"
)

// EndpointAccess controls how the cluster API endpoint is reachable.
type EndpointAccess string

const (
	EndpointPublic           EndpointAccess = "public"
	EndpointPrivate          EndpointAccess = "private"
	EndpointPublicAndPrivate EndpointAccess = "public-and-private"
)

// IsValid returns true if the endpoint access mode is known.
func (e EndpointAccess) IsValid() bool {
	switch e {
	case EndpointPublic, EndpointPrivate, EndpointPublicAndPrivate:
		return true
	default:
		return false
	}
}

// CapacityType is the pricing mode of a node pool.
type CapacityType string

const (
	CapacityOnDemand CapacityType = "ON_DEMAND"
	CapacitySpot     CapacityType = "SPOT"
)

// IsValid returns true if the capacity type is known.
func (c CapacityType) IsValid() bool {
	return c == CapacityOnDemand || c == CapacitySpot
}

// IdentityKind is the type of external identity mapped into the cluster.
type IdentityKind string

const (
	IdentityUser IdentityKind = "user"
	IdentityRole IdentityKind = "role"
)

// NetworkProperties describes the VPC.
type NetworkProperties struct {
	CIDR              string   `yaml:"cidr" json:"cidr"`
	MaxAZs            int      `yaml:"max_azs" json:"max_azs"`
	AvailabilityZones []string `yaml:"availability_zones" json:"availability_zones"`
	NATGateways       int      `yaml:"nat_gateways" json:"nat_gateways"`
}

func (NetworkProperties) Kind() Kind { return KindNetwork }

// SubnetProperties describes one subnet partition of the network.
type SubnetProperties struct {
	AvailabilityZone string   `yaml:"availability_zone" json:"availability_zone"`
	CIDR             string   `yaml:"cidr" json:"cidr"`
	Exposure         Exposure `yaml:"exposure" json:"exposure"`
}

func (SubnetProperties) Kind() Kind { return KindSubnet }

// Validate implements validatable.
func (p SubnetProperties) Validate() error {
	if p.Exposure != ExposurePublic && p.Exposure != ExposurePrivate {
		return fmt.Errorf("unknown subnet exposure %q", p.Exposure)
	}
	return nil
}

// EncryptionKeyProperties describes a customer managed key.
type EncryptionKeyProperties struct {
	Description       string `yaml:"description" json:"description"`
	EnableKeyRotation bool   `yaml:"enable_key_rotation" json:"enable_key_rotation"`
}

func (EncryptionKeyProperties) Kind() Kind { return KindEncryptionKey }

// RoleProperties describes an IAM role assumed by a service.
type RoleProperties struct {
	AssumedBy       string   `yaml:"assumed_by" json:"assumed_by"`
	ManagedPolicies []string `yaml:"managed_policies" json:"managed_policies"`
}

func (RoleProperties) Kind() Kind { return KindRole }

// SecurityGroupProperties describes a security group. Ingress is expressed
// separately as access rules.
type SecurityGroupProperties struct {
	Description      string `yaml:"description" json:"description"`
	AllowAllOutbound bool   `yaml:"allow_all_outbound" json:"allow_all_outbound"`
}

func (SecurityGroupProperties) Kind() Kind { return KindSecurityGroup }

// ClusterProperties describes the managed Kubernetes control plane.
type ClusterProperties struct {
	Version         string         `yaml:"version" json:"version"`
	EndpointAccess  EndpointAccess `yaml:"endpoint_access" json:"endpoint_access"`
	DefaultCapacity int            `yaml:"default_capacity" json:"default_capacity"`
}

func (ClusterProperties) Kind() Kind { return KindCluster }

// Validate implements validatable.
func (p ClusterProperties) Validate() error {
	if p.Version == "" {
		return errors.New("cluster version is required")
	}
	if !p.EndpointAccess.IsValid() {
		return fmt.Errorf("unknown endpoint access %q", p.EndpointAccess)
	}
	return nil
}

// NodePoolProperties describes a managed node group.
type NodePoolProperties struct {
	InstanceTypes []string     `yaml:"instance_types" json:"instance_types"`
	CapacityType  CapacityType `yaml:"capacity_type" json:"capacity_type"`
	MinSize       int          `yaml:"min_size" json:"min_size"`
	DesiredSize   int          `yaml:"desired_size" json:"desired_size"`
	MaxSize       int          `yaml:"max_size" json:"max_size"`
	DiskSize      int          `yaml:"disk_size" json:"disk_size"`
}

func (NodePoolProperties) Kind() Kind { return KindNodePool }

// Validate implements validatable.
func (p NodePoolProperties) Validate() error {
	if len(p.InstanceTypes) == 0 {
		return errors.New("at least one instance type is required")
	}
	if !p.CapacityType.IsValid() {
		return fmt.Errorf("unknown capacity type %q", p.CapacityType)
	}
	if p.MinSize < 0 {
		return fmt.Errorf("min size cannot be negative, got %d", p.MinSize)
	}
	if p.MinSize > p.DesiredSize {
		return fmt.Errorf("min size %d exceeds desired size %d", p.MinSize, p.DesiredSize)
	}
	if p.DesiredSize > p.MaxSize {
		return fmt.Errorf("desired size %d exceeds max size %d", p.DesiredSize, p.MaxSize)
	}
	if p.MaxSize < 1 {
		return fmt.Errorf("max size must be at least 1, got %d", p.MaxSize)
	}
	if p.DiskSize < 1 {
		return fmt.Errorf("disk size must be at least 1 GiB, got %d", p.DiskSize)
	}
	return nil
}

// IdentityBindingProperties maps an external identity to in-cluster groups.
type IdentityBindingProperties struct {
	Identity     string       `yaml:"identity" json:"identity"`
	IdentityKind IdentityKind `yaml:"identity_kind" json:"identity_kind"`
	Username     string       `yaml:"username" json:"username"`
	Groups       []string     `yaml:"groups" json:"groups"`
}

func (IdentityBindingProperties) Kind() Kind { return KindIdentityBinding }

// Validate implements validatable.
func (p IdentityBindingProperties) Validate() error {
	if p.Identity == "" {
		return errors.New("identity is required")
	}
	if p.IdentityKind != IdentityUser && p.IdentityKind != IdentityRole {
		return fmt.Errorf("unknown identity kind %q", p.IdentityKind)
	}
	if len(p.Groups) == 0 {
		return errors.New("at least one group is required")
	}
	return nil
}

// SecretProperties describes a generated credential. It never carries the
// secret value; the resolver generates it.
type SecretProperties struct {
	Username          string `yaml:"username" json:"username"`
	PasswordLength    int    `yaml:"password_length" json:"password_length"`
	ExcludeCharacters string `yaml:"exclude_characters" json:"exclude_characters"`
	GenerateStringKey string `yaml:"generate_string_key" json:"generate_string_key"`
}

func (SecretProperties) Kind() Kind { return KindSecret }

// Validate implements validatable.
func (p SecretProperties) Validate() error {
	if p.Username == "" {
		return errors.New("secret username is required")
	}
	if p.PasswordLength < 8 {
		return fmt.Errorf("password length must be at least 8, got %d", p.PasswordLength)
	}
	return nil
}

// DatabaseSubnetGroupProperties describes the subnets a database may use.
type DatabaseSubnetGroupProperties struct {
	Description string `yaml:"description" json:"description"`
}

func (DatabaseSubnetGroupProperties) Kind() Kind { return KindDatabaseSubnetGroup }

// DatabaseProperties describes a managed relational database instance.
type DatabaseProperties struct {
	Engine                  string `yaml:"engine" json:"engine"`
	EngineVersion           string `yaml:"engine_version" json:"engine_version"`
	InstanceClass           string `yaml:"instance_class" json:"instance_class"`
	AllocatedStorage        int    `yaml:"allocated_storage" json:"allocated_storage"`
	MaxAllocatedStorage     int    `yaml:"max_allocated_storage" json:"max_allocated_storage"`
	StorageType             string `yaml:"storage_type" json:"storage_type"`
	MultiAZ                 bool   `yaml:"multi_az" json:"multi_az"`
	AutoMinorVersionUpgrade bool   `yaml:"auto_minor_version_upgrade" json:"auto_minor_version_upgrade"`
	PerformanceInsights     bool   `yaml:"performance_insights" json:"performance_insights"`
	DatabaseName            string `yaml:"database_name" json:"database_name"`
	Port                    int    `yaml:"port" json:"port"`
}

func (DatabaseProperties) Kind() Kind { return KindDatabase }

// Validate implements validatable.
func (p DatabaseProperties) Validate() error {
	if p.Engine == "" || p.EngineVersion == "" {
		return errors.New("database engine and version are required")
	}
	if p.AllocatedStorage < 1 {
		return fmt.Errorf("allocated storage must be at least 1 GiB, got %d", p.AllocatedStorage)
	}
	if p.MaxAllocatedStorage != 0 && p.MaxAllocatedStorage < p.AllocatedStorage {
		return fmt.Errorf("max allocated storage %d is below allocated storage %d", p.MaxAllocatedStorage, p.AllocatedStorage)
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("invalid database port %d", p.Port)
	}
	return nil
}

// FileSystemProperties describes a shared network filesystem.
type FileSystemProperties struct {
	LifecyclePolicy  string `yaml:"lifecycle_policy" json:"lifecycle_policy"`
	PerformanceMode  string `yaml:"performance_mode" json:"performance_mode"`
	ThroughputMode   string `yaml:"throughput_mode" json:"throughput_mode"`
	RemovalPolicy    string `yaml:"removal_policy" json:"removal_policy"`
	AutomaticBackups bool   `yaml:"automatic_backups" json:"automatic_backups"`
	Encrypted        bool   `yaml:"encrypted" json:"encrypted"`
	Port             int    `yaml:"port" json:"port"`
}

func (FileSystemProperties) Kind() Kind { return KindFileSystem }

// MountTargetProperties describes the file system endpoint in one subnet.
type MountTargetProperties struct {
	AvailabilityZone string `yaml:"availability_zone" json:"availability_zone"`
}

func (MountTargetProperties) Kind() Kind { return KindMountTarget }

// CacheSubnetGroupProperties describes the subnets a cache cluster may use.
type CacheSubnetGroupProperties struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

func (CacheSubnetGroupProperties) Kind() Kind { return KindCacheSubnetGroup }

// CacheClusterProperties describes an in-memory cache replication group.
type CacheClusterProperties struct {
	Description             string `yaml:"description" json:"description"`
	Engine                  string `yaml:"engine" json:"engine"`
	NodeType                string `yaml:"node_type" json:"node_type"`
	NumCacheClusters        int    `yaml:"num_cache_clusters" json:"num_cache_clusters"`
	MultiAZ                 bool   `yaml:"multi_az" json:"multi_az"`
	AutomaticFailover       bool   `yaml:"automatic_failover" json:"automatic_failover"`
	AutoMinorVersionUpgrade bool   `yaml:"auto_minor_version_upgrade" json:"auto_minor_version_upgrade"`
	Port                    int    `yaml:"port" json:"port"`
}

func (CacheClusterProperties) Kind() Kind { return KindCacheCluster }

// Validate implements validatable.
func (p CacheClusterProperties) Validate() error {
	if p.NumCacheClusters < 1 {
		return fmt.Errorf("at least one cache cluster is required, got %d", p.NumCacheClusters)
	}
	if p.MultiAZ && !p.AutomaticFailover {
		return errors.New("multi-AZ requires automatic failover")
	}
	if p.AutomaticFailover && p.NumCacheClusters < 2 {
		return fmt.Errorf("automatic failover requires at least 2 cache clusters, got %d", p.NumCacheClusters)
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("invalid cache port %d", p.Port)
	}
	return nil
}
