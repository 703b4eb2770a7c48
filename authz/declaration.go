package authz

import (
	"fmt"
	"sort"
	"sync"

	"github.com/yeremiapane/jobportal-app/models"
)

// DeclarationKind says how the pipeline treats an operation.
type DeclarationKind int

const (
	// KindRequire checks the caller's snapshot for Module/Action.
	KindRequire DeclarationKind = iota + 1
	// KindPublic needs no credential at all.
	KindPublic
	// KindSkip needs a credential but no matrix entry; the operation's own
	// ownership and business checks are solely responsible for safety.
	KindSkip
)

type Declaration struct {
	Kind   DeclarationKind
	Module string
	Action models.Action
}

func Public() Declaration { return Declaration{Kind: KindPublic} }

func Skip() Declaration { return Declaration{Kind: KindSkip} }

func Require(module string, action models.Action) Declaration {
	return Declaration{Kind: KindRequire, Module: module, Action: action}
}

func (d Declaration) String() string {
	switch d.Kind {
	case KindPublic:
		return "public"
	case KindSkip:
		return "skip"
	case KindRequire:
		return d.Module + ":" + string(d.Action)
	}
	return "undeclared"
}

func (d Declaration) validate() error {
	switch d.Kind {
	case KindPublic, KindSkip:
		return nil
	case KindRequire:
		if !models.IsKnownModule(d.Module) {
			return fmt.Errorf("unknown module %q", d.Module)
		}
		if _, ok := models.ParseAction(string(d.Action)); !ok {
			return fmt.Errorf("unknown action %q", d.Action)
		}
		return nil
	}
	return fmt.Errorf("declaration kind %d is not valid", d.Kind)
}

// OperationID identifies a route, e.g. "PATCH /jobs/:id/status".
func OperationID(method, path string) string {
	return method + " " + path
}

// Registry maps operation ids to their declarations. It is filled once while
// routes are registered and only read afterwards.
type Registry struct {
	mu    sync.RWMutex
	decls map[string]Declaration
}

func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]Declaration)}
}

// Declare records decl for op. Declaring the same operation twice or
// declaring an unknown module/action is an error.
func (r *Registry) Declare(op string, decl Declaration) error {
	if err := decl.validate(); err != nil {
		return fmt.Errorf("declare %s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.decls[op]; ok {
		return fmt.Errorf("declare %s: already declared as %s", op, existing)
	}
	r.decls[op] = decl
	return nil
}

func (r *Registry) Lookup(op string) (Declaration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[op]
	return d, ok
}

// Operations returns the declared operation ids, sorted.
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ops := make([]string, 0, len(r.decls))
	for op := range r.decls {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
