package wizard

import (
	"strings"

	"github.com/imamik/eksstack/internal/config"
)

// BuildConfig converts wizard answers into a complete configuration.
func BuildConfig(r *WizardResult) *config.Config {
	cfg := &config.Config{
		StackName:        strings.TrimSpace(r.StackName),
		App:              strings.TrimSpace(r.App),
		Region:           r.Region,
		AdminIdentityARN: strings.TrimSpace(r.AdminIdentityARN),
		Network:          config.NetworkConfig{MaxAZs: r.MaxAZs},
		Cluster:          config.ClusterConfig{Version: strings.TrimSpace(r.ClusterVersion)},
		NodePools:        buildNodePools(r.Pools),
	}
	cfg.ApplyDefaults()
	return cfg
}

// buildNodePools selects the default pools matching the chosen preset.
func buildNodePools(preset string) []config.NodePoolConfig {
	var pools []config.NodePoolConfig
	for _, p := range config.DefaultNodePools() {
		switch preset {
		case PoolsOnDemand:
			if p.CapacityType != config.CapacityTypeOnDemand {
				continue
			}
		case PoolsSpot:
			if p.CapacityType != config.CapacityTypeSpot {
				continue
			}
		}
		pools = append(pools, p)
	}
	return pools
}
