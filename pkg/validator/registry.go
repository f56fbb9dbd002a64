package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/rulekit/pkg/signature"
)

// Registry maps rule names to implementations. It also keeps the Go types
// addressable by the class rule and the named functions accepted by the
// callable, function and callback rules.
//
// Reads are safe for concurrent use. Register rules during startup: a session
// that is already evaluating may or may not observe a rule added meanwhile.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	types map[string]reflect.Type
	funcs map[string]any
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)
	return r
}

// NewEmptyRegistry returns a registry without rules.
func NewEmptyRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
		types: make(map[string]reflect.Type),
		funcs: make(map[string]any),
	}
}

// Register adds a rule under its derived name: Name() when it implements
// Namer, the lower-cased type name otherwise.
func (r *Registry) Register(rule Rule) error {
	name, err := ruleName(rule)
	if err != nil {
		return err
	}
	return r.RegisterAs(name, rule)
}

// RegisterAs adds a rule under an explicit name.
func (r *Registry) RegisterAs(name string, rule Rule) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || rule == nil || strings.ContainsAny(name, "|:") {
		return fmt.Errorf("%w: %q", ErrInvalidRule, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[name]; ok {
		return fmt.Errorf("%w: %s", ErrRuleExists, name)
	}
	r.rules[name] = rule
	return nil
}

// MustRegisterAs is RegisterAs that panics on error.
func (r *Registry) MustRegisterAs(name string, rule Rule) {
	if err := r.RegisterAs(name, rule); err != nil {
		panic(err)
	}
}

// Resolve returns the rule registered under name.
func (r *Registry) Resolve(name string) (Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return rule, nil
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsTypeRule reports whether name declares the value's type.
func (r *Registry) IsTypeRule(name string) bool {
	return IsTypeRule(name)
}

// RegisterType makes t addressable by the class rule as name. Pointer types
// are registered by their element type.
func (r *Registry) RegisterType(name string, t reflect.Type) error {
	name = normalizeTypeName(name)
	if name == "" || t == nil {
		return fmt.Errorf("%w: type %q", ErrInvalidRule, name)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[name]; ok {
		return fmt.Errorf("%w: type %s", ErrRuleExists, name)
	}
	r.types[name] = t
	return nil
}

// LookupType returns the type registered as name.
func (r *Registry) LookupType(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[normalizeTypeName(name)]
	return t, ok
}

// TypeName returns the name t was registered under.
func (r *Registry) TypeName(t reflect.Type) (string, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, rt := range r.types {
		if rt == t {
			return name, true
		}
	}
	return "", false
}

// RegisterFunc makes fn callable by name, so a string field value naming it
// passes the callable and callback rules.
func (r *Registry) RegisterFunc(name string, fn any) error {
	if name == "" {
		return fmt.Errorf("%w: empty function name", ErrInvalidRule)
	}
	if v := reflect.ValueOf(fn); v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("%w: function %q: %v", ErrInvalidRule, name, signature.ErrNotCallable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("%w: function %s", ErrRuleExists, name)
	}
	r.funcs[name] = fn
	return nil
}

// LookupFunc returns the function registered as name.
func (r *Registry) LookupFunc(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]
	return fn, ok
}

var typeRules = map[string]bool{
	RuleString:   true,
	RuleInteger:  true,
	RuleArray:    true,
	RuleBoolean:  true,
	RuleFloat:    true,
	RuleCallable: true,
	RuleFunction: true,
	RuleClass:    true,
}

// IsTypeRule reports whether name is one of the rules that declare a value's
// type: string, integer, array, boolean, float, callable, function and class.
func IsTypeRule(name string) bool {
	return typeRules[strings.ToLower(name)]
}

func ruleName(rule Rule) (string, error) {
	if rule == nil {
		return "", fmt.Errorf("%w: nil rule", ErrInvalidRule)
	}
	if n, ok := rule.(Namer); ok {
		return n.Name(), nil
	}
	if _, ok := rule.(RuleFunc); ok {
		return "", fmt.Errorf("%w: RuleFunc needs an explicit name, use RegisterAs", ErrInvalidRule)
	}

	t := reflect.TypeOf(rule)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "", fmt.Errorf("%w: cannot derive a name from %s", ErrInvalidRule, t)
	}
	return strings.ToLower(t.Name()), nil
}

// normalizeTypeName drops the leading namespace separator accepted in
// class arguments, so `\stdClass` and `stdClass` are the same type.
func normalizeTypeName(name string) string {
	return strings.TrimLeft(strings.TrimSpace(name), `\`)
}
