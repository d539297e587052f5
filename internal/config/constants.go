package config

// Defaults for a freshly generated stack.
const (
	DefaultStackName = "eks-moodle-stack"
	DefaultApp       = "moodle"
	DefaultRegion    = "us-east-1"

	DefaultNetworkCIDR = "10.0.0.0/16"
	DefaultMaxAZs      = 2
	// MaxAZs is the largest zone count a network may span.
	MaxAZs = 6

	DefaultClusterName    = "eks-cluster"
	DefaultClusterVersion = "1.21"
	DefaultEndpointAccess = "public-and-private"
	DefaultAdminGroup     = "system:masters"

	DefaultNodeDiskSize   = 50
	DefaultNodePolicy     = "AmazonSSMManagedInstanceCore"
	CapacityTypeOnDemand  = "ON_DEMAND"
	CapacityTypeSpot      = "SPOT"
	DefaultPasswordLength = 30

	DefaultDatabaseName          = "moodledb"
	DefaultDatabaseUsername      = "dbadmin"
	DefaultDatabaseEngine        = "mysql"
	DefaultDatabaseEngineVersion = "5.7.34"
	DefaultDatabaseInstanceClass = "r5.large"
	DefaultAllocatedStorage      = 30
	DefaultMaxAllocatedStorage   = 300
	DefaultStorageType           = "gp2"

	// DefaultExcludeCharacters are never used in generated database passwords.
	DefaultExcludeCharacters = "(\" %+~`#$&*()|[]{}:;<>?!'/^-,@_=\\"

	DefaultLifecyclePolicy = "AFTER_30_DAYS"
	DefaultPerformanceMode = "GENERAL_PURPOSE"
	DefaultThroughputMode  = "BURSTING"
	DefaultRemovalPolicy   = "DESTROY"

	DefaultCacheEngine          = "redis"
	DefaultCacheNodeType        = "cache.r6g.large"
	DefaultNumCacheClusters     = 2
	DefaultCacheSubnetGroupName = "eks-moodle-redis-private-subnet-group"
	DefaultCacheDescription     = "Moodle Redis"
	DefaultCachePort            = 6379

	DefaultPublishPrefix = "eksstack"
)

// Well-known engine ports.
const (
	PortMySQL      = 3306
	PortPostgreSQL = 5432
	PortNFS        = 2049
)

// EngineDefaultPort returns the default port of a database engine, or 0 when
// the engine is unknown.
func EngineDefaultPort(engine string) int {
	switch engine {
	case "mysql", "mariadb", "aurora-mysql":
		return PortMySQL
	case "postgres", "aurora-postgresql":
		return PortPostgreSQL
	default:
		return 0
	}
}
