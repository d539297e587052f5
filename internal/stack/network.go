package stack

import (
	"fmt"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/labels"
	"github.com/imamik/eksstack/internal/util/naming"
)

// Network is a declared VPC with its subnet partitions. Public[i] and
// Private[i] live in Zones[i].
type Network struct {
	Handle  graph.Handle
	Zones   []string
	Public  []graph.Handle
	Private []graph.Handle
}

// DeclareNetwork declares a VPC spread over maxAZs zones with one public and
// one private subnet per zone and one NAT gateway per zone.
func (s *Stack) DeclareNetwork(maxAZs int) (Network, error) {
	if maxAZs < 1 || maxAZs > config.MaxAZs {
		return Network{}, errdef.NewConfiguration("max availability zones must be between 1 and %d, got %d", config.MaxAZs, maxAZs)
	}

	zones, err := s.zones(maxAZs)
	if err != nil {
		return Network{}, err
	}
	publicCIDRs, privateCIDRs, err := config.SubnetLayout(s.cfg.Network.CIDR, maxAZs)
	if err != nil {
		return Network{}, errdef.NewConfiguration("network %s: %w", s.cfg.Network.CIDR, err)
	}

	name := naming.Network(s.cfg.App)
	h, err := s.declare(name, labels.ComponentNetwork, graph.NetworkProperties{
		CIDR:              s.cfg.Network.CIDR,
		MaxAZs:            maxAZs,
		AvailabilityZones: zones,
		NATGateways:       maxAZs,
	})
	if err != nil {
		return Network{}, err
	}

	n := Network{Handle: h, Zones: zones}
	for i, zone := range zones {
		pub, err := s.subnet(n, zone, publicCIDRs[i], graph.ExposurePublic)
		if err != nil {
			return Network{}, err
		}
		n.Public = append(n.Public, pub)
	}
	for i, zone := range zones {
		priv, err := s.subnet(n, zone, privateCIDRs[i], graph.ExposurePrivate)
		if err != nil {
			return Network{}, err
		}
		n.Private = append(n.Private, priv)
	}
	return n, nil
}

func (s *Stack) subnet(n Network, zone, cidr string, exposure graph.Exposure) (graph.Handle, error) {
	network, _ := s.b.Node(n.Handle)
	h, err := s.declare(naming.Subnet(network.Name, string(exposure), zone), labels.ComponentNetwork, graph.SubnetProperties{
		AvailabilityZone: zone,
		CIDR:             cidr,
		Exposure:         exposure,
	})
	if err != nil {
		return 0, err
	}
	if err := s.b.Reference(h, n.Handle, graph.RefNetwork); err != nil {
		return 0, err
	}
	return h, nil
}

// zones returns the configured zone names, or names derived from the region.
func (s *Stack) zones(count int) ([]string, error) {
	if configured := s.cfg.Network.AvailabilityZones; len(configured) > 0 {
		if len(configured) < count {
			return nil, errdef.NewConfiguration("%d availability zones configured, %d required", len(configured), count)
		}
		return append([]string(nil), configured[:count]...), nil
	}
	if s.cfg.Region == "" {
		return nil, errdef.NewConfiguration("region is required to name availability zones")
	}
	zones := make([]string, count)
	for i := range zones {
		zones[i] = fmt.Sprintf("%s%c", s.cfg.Region, 'a'+i)
	}
	return zones, nil
}
