package labels

// Standard tag keys for declared resources.
const (
	// KeyStack identifies which stack a resource belongs to
	KeyStack = "eksstack.io/stack"

	// KeyComponent identifies the application component (network, cluster, database, ...)
	KeyComponent = "eksstack.io/component"

	// KeyKind identifies the resource kind within the graph
	KeyKind = "eksstack.io/kind"

	// KeyPool identifies the node pool name
	KeyPool = "eksstack.io/pool"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "eksstack.io/managed-by"

	// KeyName is the console display name understood by the cloud provider.
	KeyName = "Name"
)

// Component values
const (
	ComponentNetwork    = "network"
	ComponentCluster    = "cluster"
	ComponentDatabase   = "database"
	ComponentFileSystem = "filesystem"
	ComponentCache      = "cache"
)

// ManagedByEksstack is the default manager value.
const ManagedByEksstack = "eksstack"

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a new tag builder with the stack name pre-set.
func NewTagBuilder(stackName string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyStack:     stackName,
			KeyManagedBy: ManagedByEksstack,
		},
	}
}

// WithComponent adds a component tag (e.g., "database").
func (tb *TagBuilder) WithComponent(component string) *TagBuilder {
	tb.tags[KeyComponent] = component
	return tb
}

// WithKind adds the resource kind tag.
func (tb *TagBuilder) WithKind(kind string) *TagBuilder {
	tb.tags[KeyKind] = kind
	return tb
}

// WithPool adds a node pool tag.
func (tb *TagBuilder) WithPool(pool string) *TagBuilder {
	tb.tags[KeyPool] = pool
	return tb
}

// WithName sets the display name tag.
func (tb *TagBuilder) WithName(name string) *TagBuilder {
	tb.tags[KeyName] = name
	return tb
}

// Merge adds all tags from the provided map. Existing keys are overwritten.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(tb.tags))
	for k, v := range tb.tags {
		result[k] = v
	}
	return result
}
