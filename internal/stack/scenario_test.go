package stack

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/naming"
)

var _ = Describe("Assemble", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
		cfg.AdminIdentityARN = "arn:aws:iam::123456789012:user/alice"
		cfg.Cluster.Version = "1.21"
		cfg.NodePools = []config.NodePoolConfig{
			{Name: "ondemand", InstanceTypes: []string{"m5.large"}, CapacityType: config.CapacityTypeOnDemand, MinSize: 2, DesiredSize: 2, MaxSize: 10},
			{Name: "spot", InstanceTypes: []string{"m5.xlarge", "m5a.xlarge"}, CapacityType: config.CapacityTypeSpot, MinSize: 0, DesiredSize: 0, MaxSize: 5},
		}
		cfg.ApplyDefaults()
		Expect(cfg.Validate()).To(Succeed())
	})

	Context("with alice as administrator and two node pools", func() {
		var g *graph.Graph

		JustBeforeEach(func() {
			var err error
			g, err = Assemble(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("declares one cluster with two node pools", func() {
			Expect(g.NodesOfKind(graph.KindCluster)).To(HaveLen(1))
			pools := g.NodesOfKind(graph.KindNodePool)
			Expect(pools).To(HaveLen(2))
			for _, p := range pools {
				props := p.Properties.(graph.NodePoolProperties)
				Expect(props.MinSize).To(BeNumerically("<=", props.DesiredSize))
				Expect(props.DesiredSize).To(BeNumerically("<=", props.MaxSize))
			}
		})

		It("binds alice to system:masters exactly once", func() {
			var matches []graph.IdentityBindingProperties
			for _, n := range g.NodesOfKind(graph.KindIdentityBinding) {
				props := n.Properties.(graph.IdentityBindingProperties)
				if props.Identity == cfg.AdminIdentityARN {
					matches = append(matches, props)
				}
			}
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Groups).To(Equal([]string{"system:masters"}))
		})

		It("grants no other identity administrator access", func() {
			for _, n := range g.NodesOfKind(graph.KindIdentityBinding) {
				props := n.Properties.(graph.IdentityBindingProperties)
				if props.Identity != cfg.AdminIdentityARN {
					Expect(props.Groups).NotTo(ContainElement("system:masters"))
				}
			}
		})

		It("declares a multi-AZ database with exactly one secret reference", func() {
			dbs := g.NodesOfKind(graph.KindDatabase)
			Expect(dbs).To(HaveLen(1))
			Expect(dbs[0].Properties.(graph.DatabaseProperties).MultiAZ).To(BeTrue())
			Expect(g.References(dbs[0].Handle, graph.RefCredentials)).To(HaveLen(1))
		})

		It("declares one file system and one cache cluster", func() {
			Expect(g.NodesOfKind(graph.KindFileSystem)).To(HaveLen(1))
			Expect(g.NodesOfKind(graph.KindCacheCluster)).To(HaveLen(1))
		})

		It("registers the fixed output names", func() {
			var names []string
			for _, o := range g.Outputs() {
				names = append(names, o.Name)
			}
			var want []string
			for _, key := range OutputKeys() {
				want = append(want, naming.Output("moodle", key))
			}
			Expect(names).To(Equal(want))
			Expect(names).To(ContainElements("MOODLE-DATABASE-HOST", "MOODLE-EKS-CLUSTER-NAME"))
		})

		It("places internal resources in private subnets only", func() {
			for _, kind := range []graph.Kind{graph.KindNodePool, graph.KindDatabaseSubnetGroup, graph.KindMountTarget, graph.KindCacheSubnetGroup} {
				for _, n := range g.NodesOfKind(kind) {
					for _, s := range g.References(n.Handle, graph.RefSubnet) {
						Expect(g.MustNode(s).Properties.(graph.SubnetProperties).Exposure).To(Equal(graph.ExposurePrivate), n.Name)
					}
				}
			}
		})
	})

	DescribeTable("rejects invalid input before handoff",
		func(mutate func(*config.Config)) {
			mutate(cfg)
			g, err := Assemble(cfg)
			Expect(err).To(HaveOccurred())
			Expect(errdef.IsConfiguration(err)).To(BeTrue())
			Expect(g).To(BeNil())
		},
		Entry("desired above max", func(c *config.Config) { c.NodePools[1].DesiredSize = 6 }),
		Entry("malformed identity", func(c *config.Config) { c.AdminIdentityARN = "alice" }),
		Entry("no zones", func(c *config.Config) { c.Network.MaxAZs = 0 }),
	)
})
