package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type entry struct {
	desc    Descriptor
	schema  *gojsonschema.Schema
	handler Handler
}

// Registry maps tool names to descriptors and handlers. It is filled once at
// startup and only read afterwards, so concurrent Invoke calls need no locking.
type Registry struct {
	order   []string
	entries map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds one tool. It fails with ErrDuplicateName when the name is taken.
func (r *Registry) Register(d Descriptor, h Handler) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return errors.New("tool name must not be empty")
	}
	if h == nil {
		return fmt.Errorf("tool %q: nil handler", name)
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	d = d.clone()
	d.Name = name
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(d.InputSchema()))
	if err != nil {
		return fmt.Errorf("tool %q: invalid input schema: %w", name, err)
	}
	r.entries[name] = &entry{desc: d, schema: schema, handler: h}
	r.order = append(r.order, name)
	return nil
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].desc.clone())
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Descriptor{}, false
	}
	return e.desc.clone(), true
}

// Invoke validates args and runs the named tool. It never returns a Go error or
// panics: every failure, including an unknown name, comes back as a Result with
// Success=false.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) Result {
	e, ok := r.entries[name]
	if !ok {
		return Failure(NotFoundf("unknown tool: %s", name))
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := validateArgs(e.desc, e.schema, Args(args)); err != nil {
		return Failure(err)
	}
	text, err := run(ctx, e.handler, Args(args))
	if err != nil {
		return Failure(err)
	}
	return Success(text)
}

func run(ctx context.Context, h Handler, args Args) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = Wrap(KindInternal, fmt.Errorf("panic: %v", p), "internal error while running tool")
		}
	}()
	return h(ctx, args)
}

// Builder collects (descriptor, handler) pairs and produces a Registry.
type Builder struct {
	reg *Registry
	err error
}

// NewBuilder starts an empty registry build.
func NewBuilder() *Builder {
	return &Builder{reg: NewRegistry()}
}

// Add registers one tool; after the first failure further calls are no-ops.
func (b *Builder) Add(d Descriptor, h Handler) *Builder {
	if b.err == nil {
		b.err = b.reg.Register(d, h)
	}
	return b
}

// AddAll registers a set of tools in order.
func (b *Builder) AddAll(set []Tool) *Builder {
	for _, t := range set {
		b.Add(t.Descriptor, t.Handler)
	}
	return b
}

// Build returns the registry or the first registration error.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.reg, nil
}

// Tool pairs a descriptor with its handler.
type Tool struct {
	Descriptor Descriptor
	Handler    Handler
}
