// Package plan compares two synthesized documents and computes the change
// set a resolver would apply to move from one to the other.
package plan

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/imamik/eksstack/internal/render"
)

// Action is what happens to a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionNoop   Action = "noop"
)

// Change describes the action for one resource. Fields lists the parts of
// an updated resource that differ.
type Change struct {
	Action Action
	Name   string
	Kind   string
	Fields []string
}

func (c Change) String() string {
	if len(c.Fields) > 0 {
		return fmt.Sprintf("%s %s %q (%v)", c.Action, c.Kind, c.Name, c.Fields)
	}
	return fmt.Sprintf("%s %s %q", c.Action, c.Kind, c.Name)
}

// Kinds of the non-resource entries a plan can contain.
const (
	KindAccessRule = "AccessRule"
	KindOutput     = "Output"
)

// Diff returns one change per resource of either document. Creates,
// updates and no-ops follow next's deployment order. Access rules and
// outputs that differ follow, then resource deletes in reverse of
// previous's order. A nil previous document plans a fresh stack.
func Diff(previous, next *render.Document) []Change {
	var changes []Change
	prev := map[string]render.Resource{}
	if previous != nil {
		for _, r := range previous.Resources {
			prev[r.Name] = r
		}
	}

	seen := map[string]bool{}
	for _, r := range next.Resources {
		seen[r.Name] = true
		old, ok := prev[r.Name]
		if !ok {
			changes = append(changes, Change{Action: ActionCreate, Name: r.Name, Kind: r.Kind})
			continue
		}
		if fields := changedFields(old, r); len(fields) > 0 {
			changes = append(changes, Change{Action: ActionUpdate, Name: r.Name, Kind: r.Kind, Fields: fields})
			continue
		}
		changes = append(changes, Change{Action: ActionNoop, Name: r.Name, Kind: r.Kind})
	}

	var prevRules []render.AccessRule
	var prevOutputs []render.Output
	if previous != nil {
		prevRules, prevOutputs = previous.AccessRules, previous.Outputs
	}
	changes = append(changes, diffAccessRules(prevRules, next.AccessRules)...)
	changes = append(changes, diffOutputs(prevOutputs, next.Outputs)...)

	if previous != nil {
		for i := len(previous.Resources) - 1; i >= 0; i-- {
			r := previous.Resources[i]
			if !seen[r.Name] {
				changes = append(changes, Change{Action: ActionDelete, Name: r.Name, Kind: r.Kind})
			}
		}
	}
	return changes
}

type ruleKey struct {
	from, to string
	port     int
}

func (k ruleKey) String() string {
	return fmt.Sprintf("%s->%s:%d", k.from, k.to, k.port)
}

// diffAccessRules reports rules keyed by (from, to, port) that were added,
// removed or re-described. Unchanged rules are omitted.
func diffAccessRules(prev, next []render.AccessRule) []Change {
	old := make(map[ruleKey]render.AccessRule, len(prev))
	for _, r := range prev {
		old[ruleKey{r.From, r.To, r.Port}] = r
	}

	var changes []Change
	seen := make(map[ruleKey]bool, len(next))
	for _, r := range next {
		k := ruleKey{r.From, r.To, r.Port}
		seen[k] = true
		o, ok := old[k]
		switch {
		case !ok:
			changes = append(changes, Change{Action: ActionCreate, Name: k.String(), Kind: KindAccessRule})
		case o.Description != r.Description:
			changes = append(changes, Change{Action: ActionUpdate, Name: k.String(), Kind: KindAccessRule, Fields: []string{"description"}})
		}
	}
	for _, r := range prev {
		if k := (ruleKey{r.From, r.To, r.Port}); !seen[k] {
			changes = append(changes, Change{Action: ActionDelete, Name: k.String(), Kind: KindAccessRule})
		}
	}
	return changes
}

// diffOutputs reports outputs, keyed by name, that were added, removed or
// changed. Unchanged outputs are omitted.
func diffOutputs(prev, next []render.Output) []Change {
	old := make(map[string]render.Output, len(prev))
	for _, o := range prev {
		old[o.Name] = o
	}

	var changes []Change
	seen := make(map[string]bool, len(next))
	for _, o := range next {
		seen[o.Name] = true
		p, ok := old[o.Name]
		if !ok {
			changes = append(changes, Change{Action: ActionCreate, Name: o.Name, Kind: KindOutput})
			continue
		}
		var fields []string
		if p.Value != o.Value {
			fields = append(fields, "value")
		}
		if p.Description != o.Description {
			fields = append(fields, "description")
		}
		if len(fields) > 0 {
			changes = append(changes, Change{Action: ActionUpdate, Name: o.Name, Kind: KindOutput, Fields: fields})
		}
	}
	for _, o := range prev {
		if !seen[o.Name] {
			changes = append(changes, Change{Action: ActionDelete, Name: o.Name, Kind: KindOutput})
		}
	}
	return changes
}

// changedFields names what differs between two versions of a resource.
// Property names are reported as properties.<key>.
func changedFields(old, cur render.Resource) []string {
	var fields []string
	if old.Kind != cur.Kind {
		fields = append(fields, "kind")
	}

	keys := map[string]struct{}{}
	for k := range old.Properties {
		keys[k] = struct{}{}
	}
	for k := range cur.Properties {
		keys[k] = struct{}{}
	}
	var props []string
	for k := range keys {
		if !reflect.DeepEqual(old.Properties[k], cur.Properties[k]) {
			props = append(props, "properties."+k)
		}
	}
	sort.Strings(props)
	fields = append(fields, props...)

	if !sameDependencies(old.DependsOn, cur.DependsOn) {
		fields = append(fields, "depends_on")
	}
	if !sameTags(old.Tags, cur.Tags) {
		fields = append(fields, "tags")
	}
	return fields
}

func sameDependencies(a, b []render.Dependency) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameTags(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// Summary counts changes per action.
type Summary struct {
	Create int
	Update int
	Delete int
	Noop   int
}

// Summarize counts the changes by action.
func Summarize(changes []Change) Summary {
	var s Summary
	for _, c := range changes {
		switch c.Action {
		case ActionCreate:
			s.Create++
		case ActionUpdate:
			s.Update++
		case ActionDelete:
			s.Delete++
		case ActionNoop:
			s.Noop++
		}
	}
	return s
}

// Empty reports whether applying the changes would do nothing.
func (s Summary) Empty() bool {
	return s.Create == 0 && s.Update == 0 && s.Delete == 0
}

func (s Summary) String() string {
	return fmt.Sprintf("%d to create, %d to update, %d to delete, %d unchanged", s.Create, s.Update, s.Delete, s.Noop)
}
