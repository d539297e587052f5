package stack

import (
	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/labels"
)

// Stack declares resources into a single graph.
type Stack struct {
	cfg   *config.Config
	b     *graph.Builder
	bound map[graph.Handle]map[string]bool
}

// New creates a stack for cfg. cfg must have defaults applied; it is read
// for naming, tagging and the values of implied resources.
func New(cfg *config.Config) *Stack {
	return &Stack{
		cfg:   cfg,
		b:     graph.NewBuilder(cfg.StackName),
		bound: make(map[graph.Handle]map[string]bool),
	}
}

// Finish validates the declarations and returns the immutable graph.
func (s *Stack) Finish() (*graph.Graph, error) {
	return s.b.Finish()
}

// declare adds a tagged node.
func (s *Stack) declare(name, component string, props graph.Properties) (graph.Handle, error) {
	tags := labels.NewTagBuilder(s.cfg.StackName).
		Merge(s.cfg.Tags).
		WithComponent(component).
		WithKind(string(props.Kind())).
		WithName(name).
		Build()
	return s.b.AddNode(name, props, tags)
}

// refs adds one labelled edge from src to every target.
func (s *Stack) refs(src graph.Handle, label string, targets ...graph.Handle) error {
	for _, t := range targets {
		if err := s.b.Reference(src, t, label); err != nil {
			return err
		}
	}
	return nil
}

// allow declares that the cluster may reach target on port.
func (s *Stack) allow(c Cluster, target graph.Handle, port int, what string) error {
	return s.b.AddAccessRule(graph.AccessRule{
		From:        c.Handle,
		To:          target,
		Port:        port,
		Description: "Allow " + what + " access from EKS cluster " + c.Name,
	})
}

// securityGroup declares a security group in the network.
func (s *Stack) securityGroup(name, component, description string, n Network) (graph.Handle, error) {
	sg, err := s.declare(name, component, graph.SecurityGroupProperties{
		Description:      description,
		AllowAllOutbound: true,
	})
	if err != nil {
		return 0, err
	}
	if err := s.b.Reference(sg, n.Handle, graph.RefNetwork); err != nil {
		return 0, err
	}
	return sg, nil
}

func checkNetwork(n Network) error {
	if !n.Handle.Valid() {
		return errdef.NewConfiguration("network handle is required")
	}
	if len(n.Private) == 0 {
		return errdef.NewConfiguration("network has no private subnets")
	}
	return nil
}

func checkCluster(c Cluster) error {
	if !c.Handle.Valid() {
		return errdef.NewConfiguration("cluster handle is required")
	}
	return nil
}
