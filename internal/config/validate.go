package config

import (
	"errors"
	"fmt"
	"math/bits"
	"net"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/util/arnutil"
	"github.com/imamik/eksstack/internal/util/ptr"
)

// versionRegex matches Kubernetes minor versions such as "1.21".
var versionRegex = regexp.MustCompile(`^[1-9][0-9]*\.[0-9]+$`)

// maxSubnetPrefix is the smallest subnet the network may be split into.
const maxSubnetPrefix = 28

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their file names so messages match what users write.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration and returns every problem found, joined.
// The returned error is a configuration error.
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	errs = append(errs, c.validateAdminIdentity()...)
	errs = append(errs, c.validateNetwork()...)
	errs = append(errs, c.validateCluster()...)
	errs = append(errs, c.validateNodePools()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateCache()...)

	if err := errors.Join(errs...); err != nil {
		return errdef.NewConfiguration("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) validateAdminIdentity() []error {
	if c.AdminIdentityARN == "" {
		// Reported by the required tag.
		return nil
	}
	if _, err := arnutil.ParseIdentity(c.AdminIdentityARN); err != nil {
		return []error{fmt.Errorf("admin_identity_arn: %w", err)}
	}
	return nil
}

func (c *Config) validateNetwork() []error {
	var errs []error
	n := c.Network
	if n.MaxAZs < 1 || n.MaxAZs > MaxAZs {
		// Reported by the min/max tags.
		return nil
	}
	if _, network, err := net.ParseCIDR(n.CIDR); err == nil {
		ones, _ := network.Mask.Size()
		if ones+SubnetNewBits(n.MaxAZs) > maxSubnetPrefix {
			errs = append(errs, fmt.Errorf("network.cidr: %s is too small for %d public and %d private subnets", n.CIDR, n.MaxAZs, n.MaxAZs))
		}
	}
	if len(n.AvailabilityZones) > 0 && len(n.AvailabilityZones) < n.MaxAZs {
		errs = append(errs, fmt.Errorf("network.availability_zones: %d zones listed, max_azs needs %d", len(n.AvailabilityZones), n.MaxAZs))
	}
	seen := make(map[string]bool, len(n.AvailabilityZones))
	for _, zone := range n.AvailabilityZones {
		if seen[zone] {
			errs = append(errs, fmt.Errorf("network.availability_zones: zone %q listed twice", zone))
		}
		seen[zone] = true
	}
	return errs
}

func (c *Config) validateCluster() []error {
	if c.Cluster.Version != "" && !versionRegex.MatchString(c.Cluster.Version) {
		return []error{fmt.Errorf("cluster.version: %q must be a major.minor version such as 1.21", c.Cluster.Version)}
	}
	return nil
}

func (c *Config) validateNodePools() []error {
	var errs []error
	seen := make(map[string]bool, len(c.NodePools))
	for i, p := range c.NodePools {
		if p.Name == "" {
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("node_pools[%d].name: duplicate node pool name %q", i, p.Name))
		}
		seen[p.Name] = true
	}
	return errs
}

func (c *Config) validateDatabase() []error {
	var errs []error
	db := c.Database
	if db.Engine != "" && EngineDefaultPort(db.Engine) == 0 {
		errs = append(errs, fmt.Errorf("database.engine: no default port known for %q", db.Engine))
	}
	if ceiling := ptr.Deref(db.MaxAllocatedStorage, 0); ceiling != 0 && ceiling < db.AllocatedStorage {
		errs = append(errs, fmt.Errorf("database.max_allocated_storage: must not be less than allocated_storage (%d < %d)", ceiling, db.AllocatedStorage))
	}
	return errs
}

func (c *Config) validateCache() []error {
	var errs []error
	cc := c.Cache
	multiAZ := cc.MultiAZ != nil && *cc.MultiAZ
	failover := cc.AutomaticFailover != nil && *cc.AutomaticFailover
	if multiAZ && !failover {
		errs = append(errs, errors.New("cache.multi_az: requires automatic_failover"))
	}
	if failover && cc.NumCacheClusters < 2 {
		errs = append(errs, fmt.Errorf("cache.automatic_failover: requires at least 2 cache clusters, got %d", cc.NumCacheClusters))
	}
	return errs
}

// SubnetNewBits returns the number of bits added to the network prefix so
// that one public and one private subnet fit in every zone.
func SubnetNewBits(azs int) int {
	if azs < 1 {
		return 0
	}
	return bits.Len(uint(2*azs - 1))
}

// fieldError turns a validator error into a message naming the config path.
func fieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("needs at least %s entries", fe.Param())
		} else {
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must be at most %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must be at most %s", fe.Param())
		}
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s], got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	case "gtefield":
		msg = fmt.Sprintf("must not be less than %s", snakeCase(fe.Param()))
	case "cidrv4":
		msg = fmt.Sprintf("%q is not an IPv4 CIDR", fmt.Sprint(fe.Value()))
	case "url":
		msg = fmt.Sprintf("%q is not a URL", fmt.Sprint(fe.Value()))
	case "startswith":
		msg = fmt.Sprintf("must start with %q", fe.Param())
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return fmt.Errorf("%s: %s", path, msg)
}

// snakeCase converts a Go field name such as MinSize to min_size.
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
