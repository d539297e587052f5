package stack

import (
	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/labels"
	"github.com/imamik/eksstack/internal/util/naming"
	"github.com/imamik/eksstack/internal/util/ptr"
)

// FileSystem is a declared shared file system with its mount targets.
type FileSystem struct {
	Handle        graph.Handle
	SecurityGroup graph.Handle
	MountTargets  []graph.Handle
}

// DeclareFileSystem declares an encrypted file system with one mount target
// in each private subnet, and allows the cluster to reach it over NFS.
func (s *Stack) DeclareFileSystem(n Network, c Cluster, spec config.FileSystemConfig) (FileSystem, error) {
	if err := checkNetwork(n); err != nil {
		return FileSystem{}, err
	}
	if err := checkCluster(c); err != nil {
		return FileSystem{}, err
	}

	name := naming.FileSystem(s.cfg.App)

	sg, err := s.securityGroup(naming.SecurityGroup(name), labels.ComponentFileSystem, "File system security group", n)
	if err != nil {
		return FileSystem{}, err
	}

	h, err := s.declare(name, labels.ComponentFileSystem, graph.FileSystemProperties{
		LifecyclePolicy:  spec.LifecyclePolicy,
		PerformanceMode:  spec.PerformanceMode,
		ThroughputMode:   spec.ThroughputMode,
		RemovalPolicy:    spec.RemovalPolicy,
		AutomaticBackups: ptr.Deref(spec.AutomaticBackups, true),
		Encrypted:        true,
		Port:             config.PortNFS,
	})
	if err != nil {
		return FileSystem{}, err
	}
	if err := s.b.Reference(h, sg, graph.RefSecurityGroup); err != nil {
		return FileSystem{}, err
	}
	if err := s.b.Reference(h, n.Handle, graph.RefNetwork); err != nil {
		return FileSystem{}, err
	}

	fs := FileSystem{Handle: h, SecurityGroup: sg}
	for i, subnet := range n.Private {
		mt, err := s.declare(naming.MountTarget(name, n.Zones[i]), labels.ComponentFileSystem, graph.MountTargetProperties{
			AvailabilityZone: n.Zones[i],
		})
		if err != nil {
			return FileSystem{}, err
		}
		if err := s.b.Reference(mt, h, graph.RefFileSystem); err != nil {
			return FileSystem{}, err
		}
		if err := s.b.Reference(mt, subnet, graph.RefSubnet); err != nil {
			return FileSystem{}, err
		}
		if err := s.b.Reference(mt, sg, graph.RefSecurityGroup); err != nil {
			return FileSystem{}, err
		}
		fs.MountTargets = append(fs.MountTargets, mt)
	}

	if err := s.allow(c, h, config.PortNFS, "file system"); err != nil {
		return FileSystem{}, err
	}
	return fs, nil
}
