package graph

// Kind identifies the type of a resource node.
type Kind string

// Resource kinds known to the graph.
const (
	KindNetwork             Kind = "Network"
	KindSubnet              Kind = "Subnet"
	KindEncryptionKey       Kind = "EncryptionKey"
	KindRole                Kind = "Role"
	KindSecurityGroup       Kind = "SecurityGroup"
	KindCluster             Kind = "Cluster"
	KindNodePool            Kind = "NodePool"
	KindIdentityBinding     Kind = "IdentityBinding"
	KindSecret              Kind = "Secret"
	KindDatabaseSubnetGroup Kind = "DatabaseSubnetGroup"
	KindDatabase            Kind = "Database"
	KindFileSystem          Kind = "FileSystem"
	KindMountTarget         Kind = "MountTarget"
	KindCacheSubnetGroup    Kind = "CacheSubnetGroup"
	KindCacheCluster        Kind = "CacheCluster"
)

// Kinds returns every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindNetwork, KindSubnet, KindEncryptionKey, KindRole, KindSecurityGroup,
		KindCluster, KindNodePool, KindIdentityBinding, KindSecret,
		KindDatabaseSubnetGroup, KindDatabase, KindFileSystem, KindMountTarget,
		KindCacheSubnetGroup, KindCacheCluster,
	}
}

// IsValid returns true if k is a known kind.
func (k Kind) IsValid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// requiresPrivateSubnets reports whether resources of this kind may only be
// placed in private subnets.
func (k Kind) requiresPrivateSubnets() bool {
	switch k {
	case KindNodePool, KindDatabaseSubnetGroup, KindMountTarget, KindCacheSubnetGroup:
		return true
	default:
		return false
	}
}

// attributes lists the resolver-provided attributes each kind exposes.
// Outputs may only reference attributes listed here.
var attributes = map[Kind][]string{
	KindNetwork:       {"VpcId"},
	KindSubnet:        {"SubnetId"},
	KindEncryptionKey: {"Arn", "KeyId"},
	KindRole:          {"Arn"},
	KindSecurityGroup: {"GroupId"},
	KindCluster:       {"Name", "Arn", "Endpoint", "SecurityGroupId"},
	KindNodePool:      {"NodegroupName"},
	KindSecret:        {"Arn"},
	KindDatabase:      {"Endpoint.Address", "Endpoint.Port"},
	KindFileSystem:    {"FileSystemId"},
	KindMountTarget:   {"IpAddress"},
	KindCacheCluster:  {"PrimaryEndPoint.Address", "PrimaryEndPoint.Port"},
}

// Attributes returns the attribute names a node of kind k exposes after resolution.
func (k Kind) Attributes() []string {
	return append([]string(nil), attributes[k]...)
}

// HasAttribute reports whether kind k exposes the named attribute.
func (k Kind) HasAttribute(name string) bool {
	for _, a := range attributes[k] {
		if a == name {
			return true
		}
	}
	return false
}

// Reference labels name the role a dependency edge plays for its source node.
const (
	RefNetwork       = "network"
	RefSubnet        = "subnet"
	RefEncryptionKey = "encryption_key"
	RefRole          = "role"
	RefSecurityGroup = "security_group"
	RefCluster       = "cluster"
	RefCredentials   = "credentials"
	RefSubnetGroup   = "subnet_group"
	RefFileSystem    = "file_system"
	RefDependsOn     = "depends_on"
)
