// Package arnutil parses the external identity references that are mapped
// into the cluster.
package arnutil

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// Identity kinds accepted by ParseIdentity.
const (
	KindUser = "user"
	KindRole = "role"
)

// Identity is a parsed IAM principal reference.
type Identity struct {
	ARN       string
	Partition string
	AccountID string
	Kind      string // "user" or "role"
	Path      string // "/" when the principal has no path
	Name      string
}

// ParseIdentity parses an IAM user or role ARN such as
// arn:aws:iam::123456789012:user/alice. Anything else is rejected.
func ParseIdentity(ref string) (Identity, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Identity{}, fmt.Errorf("identity reference is empty")
	}
	if !arn.IsARN(ref) {
		return Identity{}, fmt.Errorf("identity reference %q is not an ARN", ref)
	}

	parsed, err := arn.Parse(ref)
	if err != nil {
		return Identity{}, fmt.Errorf("identity reference %q: %w", ref, err)
	}
	if parsed.Service != "iam" {
		return Identity{}, fmt.Errorf("identity reference %q: service must be iam, got %q", ref, parsed.Service)
	}
	if parsed.Region != "" {
		return Identity{}, fmt.Errorf("identity reference %q: IAM ARNs are global and carry no region", ref)
	}
	if !isAccountID(parsed.AccountID) {
		return Identity{}, fmt.Errorf("identity reference %q: account ID must be 12 digits, got %q", ref, parsed.AccountID)
	}

	kind, rest, ok := strings.Cut(parsed.Resource, "/")
	if !ok || (kind != KindUser && kind != KindRole) {
		return Identity{}, fmt.Errorf("identity reference %q: resource must start with user/ or role/", ref)
	}

	path := "/"
	name := rest
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		path = "/" + rest[:i+1]
		name = rest[i+1:]
	}
	if name == "" {
		return Identity{}, fmt.Errorf("identity reference %q: principal name is empty", ref)
	}

	return Identity{
		ARN:       ref,
		Partition: parsed.Partition,
		AccountID: parsed.AccountID,
		Kind:      kind,
		Path:      path,
		Name:      name,
	}, nil
}

func isAccountID(s string) bool {
	if len(s) != 12 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
