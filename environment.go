package engine

// EnvironmentRecord implements ES5.1 §10.2.1's abstract operations. Both
// concrete kinds (declarative, object) satisfy it, matching the spec's own
// two-subtype design rather than collapsing them into one map, because
// ObjectEnvironmentRecord's object-backed bindings and `provideThis` flag
// genuinely differ in behavior from a plain declarative frame.
type EnvironmentRecord interface {
	HasBinding(vm *VM, name Name) bool
	CreateMutableBinding(vm *VM, name Name, deletable bool) error
	SetMutableBinding(vm *VM, name Name, value JSValue, strict bool) error
	GetBindingValue(vm *VM, name Name, strict bool) (JSValue, error)
	DeleteBinding(vm *VM, name Name) (bool, error)
	ImplicitThisValue() JSValue
}

// binding is one slot of a DeclarativeEnvironmentRecord.
type binding struct {
	value       JSValue
	mutable     bool
	deletable   bool
	initialized bool
	// alternates holds the skipped-mode speculative values for this binding,
	// keyed by skipped-section id, mirroring Object.alternates.
	alternates map[SkippedSectionID]JSValue
}

// DeclarativeEnvironmentRecord implements ES5.1 §10.2.1.1: function scopes
// and catch clauses.
type DeclarativeEnvironmentRecord struct {
	bindings map[Name]*binding
}

func NewDeclarativeEnvironmentRecord() *DeclarativeEnvironmentRecord {
	return &DeclarativeEnvironmentRecord{bindings: make(map[Name]*binding)}
}

func (r *DeclarativeEnvironmentRecord) HasBinding(vm *VM, name Name) bool {
	_, ok := r.bindings[name]
	return ok
}

func (r *DeclarativeEnvironmentRecord) CreateMutableBinding(vm *VM, name Name, deletable bool) error {
	r.bindings[name] = &binding{value: Undefined{}, mutable: true, deletable: deletable, initialized: true}
	return nil
}

func (r *DeclarativeEnvironmentRecord) CreateImmutableBinding(name Name) {
	r.bindings[name] = &binding{mutable: false, initialized: false}
}

func (r *DeclarativeEnvironmentRecord) InitializeImmutableBinding(name Name, value JSValue) {
	b, ok := r.bindings[name]
	if !ok {
		b = &binding{}
		r.bindings[name] = b
	}
	b.value = value
	b.initialized = true
}

func (r *DeclarativeEnvironmentRecord) SetMutableBinding(vm *VM, name Name, value JSValue, strict bool) error {
	b, ok := r.bindings[name]
	if !ok {
		if strict {
			return vm.ThrowReferenceError("%s is not defined", name)
		}
		r.bindings[name] = &binding{value: value, mutable: true, deletable: true, initialized: true}
		return nil
	}
	if !b.mutable {
		if strict {
			return vm.ThrowTypeError("assignment to constant variable '%s'", name)
		}
		return nil
	}
	if sec, ok := vm.currentSkippedSection(); ok {
		if b.alternates == nil {
			b.alternates = make(map[SkippedSectionID]JSValue)
		}
		b.alternates[sec] = value
		return nil
	}
	b.value = value
	return nil
}

func (r *DeclarativeEnvironmentRecord) GetBindingValue(vm *VM, name Name, strict bool) (JSValue, error) {
	b, ok := r.bindings[name]
	if !ok || !b.initialized {
		if strict || !ok {
			return nil, vm.ThrowReferenceError("%s is not defined", name)
		}
		return nil, vm.ThrowReferenceError("%s is not defined", name)
	}
	return b.value, nil
}

func (r *DeclarativeEnvironmentRecord) DeleteBinding(vm *VM, name Name) (bool, error) {
	b, ok := r.bindings[name]
	if !ok {
		return true, nil
	}
	if !b.deletable {
		return false, nil
	}
	delete(r.bindings, name)
	return true, nil
}

func (r *DeclarativeEnvironmentRecord) ImplicitThisValue() JSValue { return Undefined{} }

// ObjectEnvironmentRecord implements ES5.1 §10.2.1.2: the global object
// environment, and `with` statement bindings. provideThis mirrors the
// spec's flag, true only for `with` bindings.
type ObjectEnvironmentRecord struct {
	Bindings    *Object
	ProvideThis bool
}

func NewObjectEnvironmentRecord(obj *Object, provideThis bool) *ObjectEnvironmentRecord {
	return &ObjectEnvironmentRecord{Bindings: obj, ProvideThis: provideThis}
}

func (r *ObjectEnvironmentRecord) HasBinding(vm *VM, name Name) bool {
	return r.Bindings.HasProperty(name)
}

func (r *ObjectEnvironmentRecord) CreateMutableBinding(vm *VM, name Name, deletable bool) error {
	_, err := r.Bindings.DefineOwnProperty(vm, name, &PropertyDescriptor{
		Value: Undefined{}, Writable: true, Enumerable: true, Configurable: deletable,
		HasValue: true, HasWritable: true, HasEnumerable: true, HasConfigurable: true,
	}, true)
	return err
}

func (r *ObjectEnvironmentRecord) SetMutableBinding(vm *VM, name Name, value JSValue, strict bool) error {
	return r.Bindings.Put(vm, name, value, strict)
}

func (r *ObjectEnvironmentRecord) GetBindingValue(vm *VM, name Name, strict bool) (JSValue, error) {
	if !r.Bindings.HasProperty(name) {
		if strict {
			return nil, vm.ThrowReferenceError("%s is not defined", name)
		}
		return Undefined{}, nil
	}
	return r.Bindings.Get(vm, name)
}

func (r *ObjectEnvironmentRecord) DeleteBinding(vm *VM, name Name) (bool, error) {
	return r.Bindings.Delete(vm, name, false)
}

func (r *ObjectEnvironmentRecord) ImplicitThisValue() JSValue {
	if r.ProvideThis {
		return r.Bindings
	}
	return Undefined{}
}

// LexicalEnvironment implements ES5.1 §10.2: an environment record plus an
// outer lexical reference, forming the scope chain. This is also the unit
// captured as an Object's "creation closure" (value.go's creationEnv).
type LexicalEnvironment struct {
	Record EnvironmentRecord
	Outer  *LexicalEnvironment
}

func NewDeclarativeEnvironment(outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: NewDeclarativeEnvironmentRecord(), Outer: outer}
}

func NewObjectEnvironment(obj *Object, outer *LexicalEnvironment, provideThis bool) *LexicalEnvironment {
	return &LexicalEnvironment{Record: NewObjectEnvironmentRecord(obj, provideThis), Outer: outer}
}

// contains reports whether target is lex itself or one of lex's outer
// environments, following the Outer chain from lex.
func (lex *LexicalEnvironment) contains(target *LexicalEnvironment) bool {
	for cur := lex; cur != nil; cur = cur.Outer {
		if cur == target {
			return true
		}
	}
	return false
}

// GetIdentifierReference implements ES5.1 §10.2.2.1: walk the scope chain
// looking for a record with the binding; returns a Reference whose Base is
// either an EnvironmentRecord (environment binding) or Undefined
// (unresolvable, only legal as the target of `typeof` or a throwing
// GetValue).
func GetIdentifierReference(vm *VM, lex *LexicalEnvironment, name Name, strict bool) (*Reference, error) {
	for cur := lex; cur != nil; cur = cur.Outer {
		if cur.Record.HasBinding(vm, name) {
			return &Reference{
				base:    envRefBase{record: cur.Record, env: cur},
				name:    name,
				strict:  strict,
				isUnresolvable: false,
			}, nil
		}
	}
	return &Reference{name: name, strict: strict, isUnresolvable: true}, nil
}
