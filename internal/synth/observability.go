package synth

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Observer defines the interface for structured observability during synthesis.
type Observer interface {
	// Printf logs a free-form progress line.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured synthesis event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of synthesis event.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	// EventResourceDeclared is emitted once per node of the assembled graph.
	EventResourceDeclared EventType = "resource.declared"

	EventValidationWarning EventType = "validation.warning"
	EventValidationError   EventType = "validation.error"
)

// verbose events are only logged at V(1).
var verbose = map[EventType]bool{
	EventResourceDeclared: true,
	EventPhaseStarted:     true,
}

// LogrObserver implements Observer on top of a logr.Logger.
type LogrObserver struct {
	log    logr.Logger
	fields map[string]string
}

// NewLogrObserver wraps an existing logger.
func NewLogrObserver(log logr.Logger) *LogrObserver {
	return &LogrObserver{log: log, fields: map[string]string{}}
}

// NewConsoleObserver returns an observer writing one line per record to w.
// verbosity 1 and above includes per-resource events.
func NewConsoleObserver(w io.Writer, verbosity int) *LogrObserver {
	log := funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
	return NewLogrObserver(log.WithName("eksstack"))
}

// Printf implements Observer.
func (o *LogrObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogrObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, fieldPairs(o.fields, event.Fields)...)

	switch {
	case event.Type == EventPhaseFailed || event.Type == EventValidationError:
		o.log.Error(nil, event.Message, kv...)
	case verbose[event.Type]:
		o.log.V(1).Info(event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &LogrObserver{log: o.log, fields: merged}
}

// fieldPairs flattens context and event fields into sorted key/value pairs.
// Event fields win over context fields.
func fieldPairs(context, event map[string]string) []any {
	merged := make(map[string]string, len(context)+len(event))
	for k, v := range context {
		merged[k] = v
	}
	for k, v := range event {
		merged[k] = v
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, merged[k])
	}
	return kv
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) Printf(string, ...any)                   {}
func (NopObserver) Event(Event)                             {}
func (n NopObserver) WithFields(map[string]string) Observer { return n }

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{Type: EventPhaseFailed, Phase: phase, Message: fmt.Sprintf("failed: %v", err)})
}

// LogResourceDeclared logs a declared graph node.
func LogResourceDeclared(observer Observer, phase, kind, name string) {
	observer.Event(Event{
		Type:     EventResourceDeclared,
		Phase:    phase,
		Resource: name,
		Message:  "declared " + kind,
		Fields:   map[string]string{"kind": kind},
	})
}

// LogValidationFinding logs a validation error or warning.
func LogValidationFinding(observer Observer, phase string, ve ValidationError) {
	typ := EventValidationWarning
	if ve.IsError() {
		typ = EventValidationError
	}
	observer.Event(Event{
		Type:    typ,
		Phase:   phase,
		Message: ve.Message,
		Fields:  map[string]string{"field": ve.Field},
	})
}
