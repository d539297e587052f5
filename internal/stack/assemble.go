package stack

import (
	"fmt"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/graph"
)

// Assemble declares the complete stack described by cfg and returns the
// validated graph. cfg must have defaults applied.
func Assemble(cfg *config.Config) (*graph.Graph, error) {
	s := New(cfg)

	network, err := s.DeclareNetwork(cfg.Network.MaxAZs)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	cluster, err := s.DeclareCluster(network, cfg.Cluster.Version, graph.EndpointAccess(cfg.Cluster.EndpointAccess), 0)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}

	if err := s.BindOperatorIdentity(cluster, cfg.AdminIdentityARN, cfg.Cluster.AdminGroups); err != nil {
		return nil, fmt.Errorf("cluster access: %w", err)
	}

	for _, pool := range cfg.NodePools {
		if _, err := s.DeclareNodePool(cluster, pool); err != nil {
			return nil, fmt.Errorf("node pools: %w", err)
		}
	}

	db, err := s.DeclareDatabase(network, cluster, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	fs, err := s.DeclareFileSystem(network, cluster, cfg.FileSystem)
	if err != nil {
		return nil, fmt.Errorf("file system: %w", err)
	}

	cache, err := s.DeclareCache(network, cluster, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	if err := s.registerOutputs(cluster, db, fs, cache); err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}

	return s.Finish()
}
