package twalk

import (
	"fmt"
	"sync"
	"time"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Directive decodes the payload of a sentinel object {"$<name>": <value>}
// into a document value. Directives let JSON carry variants the syntax
// cannot express natively, datetimes in particular.
type Directive func(dec *jsontext.Decoder) (*Value, error)

// Registry maps directive names to their decoders. Safe for concurrent
// use; registration after decoding has started is allowed.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Directive
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[string]Directive)}
}

// Register adds a directive under name. Registering a duplicate name or a
// nil directive is an error.
func (r *Registry) Register(name string, fn Directive) error {
	if name == "" {
		return fmt.Errorf("directive name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("directive %q must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("directive %q already registered", name)
	}
	r.entries[name] = fn
	return nil
}

// Call dispatches to the directive registered under name.
func (r *Registry) Call(name string, dec *jsontext.Decoder) (*Value, error) {
	r.mu.RLock()
	fn, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("directive %q not registered", name)
	}
	v, err := fn(dec)
	if err != nil {
		return nil, fmt.Errorf("directive %q: %w", name, err)
	}
	return v, nil
}

// Registration is a deferred directive registration. Packages that define
// directives expose values of this type so callers opt in explicitly
// instead of relying on import side-effects (init functions).
type Registration func(r *Registry) error

// NewDirective wraps a directive into a Registration so dependent packages
// can expose named directives without performing side effects at import
// time.
func NewDirective(name string, fn Directive) Registration {
	return func(r *Registry) error { return r.Register(name, fn) }
}

// Group groups multiple registrations into one.
func Group(regs ...Registration) Registration {
	return func(r *Registry) error { return Apply(r, regs...) }
}

// Apply applies one or more registrations to an existing registry,
// stopping at the first error.
func Apply(r *Registry, regs ...Registration) error {
	for _, reg := range regs {
		if err := reg(r); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry constructs a registry and applies the provided
// registrations.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := newRegistry()
	if err := Apply(r, regs...); err != nil {
		return nil, err
	}
	return r, nil
}

// TimeDirective decodes values of the form
//
//	{"$time": "2006-01-02T15:04:05Z07:00"}
//
// into a datetime value. The payload must be a valid RFC3339 timestamp;
// the text is kept verbatim.
var TimeDirective = NewDirective("time", decodeTimeDirective)

// Builtins returns the registration bundle of all built-in directives.
func Builtins() Registration {
	return Group(TimeDirective)
}

func decodeTimeDirective(dec *jsontext.Decoder) (*Value, error) {
	var s string
	if err := json.UnmarshalDecode(dec, &s); err != nil {
		return nil, err
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return nil, err
	}
	return Datetime(s), nil
}
