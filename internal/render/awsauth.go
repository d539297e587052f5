package render

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/imamik/eksstack/internal/graph"
	"github.com/imamik/eksstack/internal/util/labels"
)

const (
	awsAuthName      = "aws-auth"
	awsAuthNamespace = "kube-system"
)

// userMapping is one entry of the mapUsers key.
type userMapping struct {
	UserARN  string   `json:"userarn"`
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
}

// roleMapping is one entry of the mapRoles key.
type roleMapping struct {
	RoleARN  string   `json:"rolearn"`
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
}

// AWSAuthConfigMap builds the aws-auth ConfigMap from the identity bindings
// of g. Only bound identities are mapped. Identities that are only known
// after resolution stay as ${node.Attribute} expressions.
func AWSAuthConfigMap(g *graph.Graph) (*corev1.ConfigMap, error) {
	var users []userMapping
	var roles []roleMapping

	for _, h := range g.Order() {
		n := g.MustNode(h)
		b, ok := n.Properties.(graph.IdentityBindingProperties)
		if !ok {
			continue
		}
		switch b.IdentityKind {
		case graph.IdentityUser:
			users = append(users, userMapping{UserARN: b.Identity, Username: b.Username, Groups: b.Groups})
		case graph.IdentityRole:
			roles = append(roles, roleMapping{RoleARN: b.Identity, Username: b.Username, Groups: b.Groups})
		default:
			return nil, fmt.Errorf("identity binding %q has unknown kind %q", n.Name, b.IdentityKind)
		}
	}

	data := map[string]string{}
	if len(users) > 0 {
		out, err := sigsyaml.Marshal(users)
		if err != nil {
			return nil, fmt.Errorf("failed to encode mapUsers: %w", err)
		}
		data["mapUsers"] = string(out)
	}
	if len(roles) > 0 {
		out, err := sigsyaml.Marshal(roles)
		if err != nil {
			return nil, fmt.Errorf("failed to encode mapRoles: %w", err)
		}
		data["mapRoles"] = string(out)
	}

	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      awsAuthName,
			Namespace: awsAuthNamespace,
			Labels:    labels.NewTagBuilder(g.Name()).WithComponent(labels.ComponentCluster).Build(),
		},
		Data: data,
	}, nil
}

// MarshalManifest encodes a Kubernetes object as a YAML manifest.
func MarshalManifest(obj any) ([]byte, error) {
	out, err := sigsyaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return out, nil
}
