package stack

import (
	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/labels"
	"github.com/imamik/eksstack/internal/util/naming"
	"github.com/imamik/eksstack/internal/util/ptr"
)

// generateStringKey is the secret field the generated password is stored under.
const generateStringKey = "password"

// Database is a declared database instance with its implied resources.
type Database struct {
	Handle        graph.Handle
	Secret        graph.Handle
	SubnetGroup   graph.Handle
	SecurityGroup graph.Handle
	Port          int
}

// DeclareDatabase declares a database instance in the network's private
// subnets together with its generated credential secret, and allows the
// cluster to reach it on the engine's default port. The database only
// references the secret; no credential value is part of the graph.
func (s *Stack) DeclareDatabase(n Network, c Cluster, spec config.DatabaseConfig) (Database, error) {
	if err := checkNetwork(n); err != nil {
		return Database{}, err
	}
	if err := checkCluster(c); err != nil {
		return Database{}, err
	}
	port := config.EngineDefaultPort(spec.Engine)
	if port == 0 {
		return Database{}, errdef.NewConfiguration("database engine %q is not supported", spec.Engine)
	}
	ceiling := ptr.Deref(spec.MaxAllocatedStorage, 0)
	if ceiling != 0 && ceiling < spec.AllocatedStorage {
		return Database{}, errdef.NewConfiguration("database max allocated storage %d GiB is below allocated storage %d GiB",
			ceiling, spec.AllocatedStorage)
	}

	name := naming.Database(s.cfg.App)

	secret, err := s.declare(naming.DatabaseSecret(name), labels.ComponentDatabase, graph.SecretProperties{
		Username:          spec.Username,
		PasswordLength:    spec.PasswordLength,
		ExcludeCharacters: spec.ExcludeCharacters,
		GenerateStringKey: generateStringKey,
	})
	if err != nil {
		return Database{}, err
	}

	group, err := s.declare(naming.SubnetGroup(name), labels.ComponentDatabase, graph.DatabaseSubnetGroupProperties{
		Description: "Private subnets for database " + name,
	})
	if err != nil {
		return Database{}, err
	}
	if err := s.refs(group, graph.RefSubnet, n.Private...); err != nil {
		return Database{}, err
	}

	sg, err := s.securityGroup(naming.SecurityGroup(name), labels.ComponentDatabase, "Database security group", n)
	if err != nil {
		return Database{}, err
	}

	h, err := s.declare(name, labels.ComponentDatabase, graph.DatabaseProperties{
		Engine:                  spec.Engine,
		EngineVersion:           spec.EngineVersion,
		InstanceClass:           spec.InstanceClass,
		AllocatedStorage:        spec.AllocatedStorage,
		MaxAllocatedStorage:     ceiling,
		StorageType:             spec.StorageType,
		MultiAZ:                 ptr.Deref(spec.MultiAZ, true),
		AutoMinorVersionUpgrade: ptr.Deref(spec.AutoMinorVersionUpgrade, true),
		PerformanceInsights:     ptr.Deref(spec.PerformanceInsights, true),
		DatabaseName:            spec.Name,
		Port:                    port,
	})
	if err != nil {
		return Database{}, err
	}

	if err := s.b.Reference(h, secret, graph.RefCredentials); err != nil {
		return Database{}, err
	}
	if err := s.b.Reference(h, group, graph.RefSubnetGroup); err != nil {
		return Database{}, err
	}
	if err := s.b.Reference(h, sg, graph.RefSecurityGroup); err != nil {
		return Database{}, err
	}
	if err := s.b.Reference(h, n.Handle, graph.RefNetwork); err != nil {
		return Database{}, err
	}
	if err := s.allow(c, h, port, "database"); err != nil {
		return Database{}, err
	}

	return Database{Handle: h, Secret: secret, SubnetGroup: group, SecurityGroup: sg, Port: port}, nil
}
