package naming

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Naming functions for declared resources.
// Supporting resources derive their names from the resource they serve so
// related nodes sort and group together.

func Network(app string) string {
	return fmt.Sprintf("%s-vpc", app)
}

func Subnet(network, exposure, zone string) string {
	return fmt.Sprintf("%s-%s-%s", network, exposure, zone)
}

func Cluster(name string) string {
	return name
}

func ClusterKey(cluster string) string {
	return fmt.Sprintf("%s-secrets-key", cluster)
}

func ClusterRole(cluster string) string {
	return fmt.Sprintf("%s-role", cluster)
}

func SecurityGroup(owner string) string {
	return fmt.Sprintf("%s-sg", owner)
}

func NodePoolRole(pool string) string {
	return fmt.Sprintf("%s-role", pool)
}

// IdentityBinding names the binding of an external identity into a cluster.
// The identity name is slugified so ARNs with paths stay readable.
func IdentityBinding(cluster, identityName string) string {
	return fmt.Sprintf("%s-binding-%s", cluster, Sanitize(identityName))
}

func NodePoolBinding(pool string) string {
	return fmt.Sprintf("%s-node-binding", pool)
}

func Database(app string) string {
	return fmt.Sprintf("%s-db", app)
}

func DatabaseSecret(db string) string {
	return fmt.Sprintf("%s-secret", db)
}

func SubnetGroup(owner string) string {
	return fmt.Sprintf("%s-subnet-group", owner)
}

func FileSystem(app string) string {
	return fmt.Sprintf("%s-efs", app)
}

func MountTarget(fs, zone string) string {
	return fmt.Sprintf("%s-mount-%s", fs, zone)
}

func Cache(app string) string {
	return fmt.Sprintf("%s-redis", app)
}

// Output returns an operator-facing output name: the upper-cased app prefix
// joined with the key, e.g. MOODLE-DATABASE-HOST.
func Output(app, key string) string {
	return strings.ToUpper(Sanitize(app)) + "-" + key
}

// Sanitize converts free-form text into a lowercase, hyphen-separated name.
func Sanitize(s string) string {
	return slug.Make(s)
}
