package engine

// Reference reifies the ES5.1 §8.7 Reference specification type as a real
// value rather than an implementation detail threaded through evalExpr's
// call stack. Carrying it as a first-class JSValue lets the rule processor
// hold a Reference across an ambiguous-mode branch boundary (e.g. the
// target of a compound assignment inside a branch gated on Unknown).
type Reference struct {
	// base is either envRefBase (identifier resolved against a scope chain)
	// or a plain JSValue (property reference, base is the object/primitive
	// the property was read off of).
	base any
	name Name
	strict bool
	isUnresolvable bool
}

func (*Reference) Category() ValueKind { return KindReference }

// envRefBase is the base of an identifier Reference: the environment
// record the name resolved in, plus the LexicalEnvironment that owns it
// (needed for ambiguous-mode leak detection against a binding's creation
// scope, mirroring how *Object tracks creationEnv).
type envRefBase struct {
	record EnvironmentRecord
	env    *LexicalEnvironment
}

// NewPropertyReference builds a Reference whose base is a value (object or
// primitive), as produced by member-expression evaluation.
func NewPropertyReference(base JSValue, name Name, strict bool) *Reference {
	return &Reference{base: base, name: name, strict: strict}
}

// IsUnresolvable implements ES5.1 §8.7.1.
func (r *Reference) IsUnresolvable() bool { return r.isUnresolvable }

// IsPropertyReference implements ES5.1 §8.7.2.
func (r *Reference) IsPropertyReference() bool {
	if r.isUnresolvable {
		return false
	}
	_, isEnv := r.base.(envRefBase)
	return !isEnv
}

// HasPrimitiveBase implements ES5.1 §8.7.3.
func (r *Reference) HasPrimitiveBase() bool {
	switch r.base.(type) {
	case Boolean, Number, String:
		return true
	}
	return false
}

// GetValue implements ES5.1 §8.7.1 (GetValue(V)). Passing a non-Reference
// through is legal and is a no-op, mirroring the spec's "if Type(V) is not
// Reference, return V" first step, so callers don't need to type-switch
// before calling it on every evaluated expression result.
func GetValue(vm *VM, v JSValue) (JSValue, error) {
	ref, ok := v.(*Reference)
	if !ok {
		return v, nil
	}
	if ref.isUnresolvable {
		return nil, vm.ThrowReferenceError("%s is not defined", ref.name)
	}
	if envBase, ok := ref.base.(envRefBase); ok {
		return envBase.record.GetBindingValue(vm, ref.name, ref.strict)
	}

	baseVal := ref.base.(JSValue)
	if err := CheckObjectCoercible(vm, baseVal); err != nil {
		return nil, err
	}
	if obj, ok := baseVal.(*Object); ok {
		return obj.Get(vm, ref.name)
	}
	// primitive base: auto-box per §8.7.1 step 5: ToObject builds a
	// throwaway wrapper object and the property is read from it, same as the
	// spec's "let O be ToObject(base)".
	boxed, err := ToObject(vm, baseVal)
	if err != nil {
		return nil, err
	}
	if boxed == nil {
		return vm.MakeUnknown(), nil
	}
	return boxed.Get(vm, ref.name)
}

// PutValue implements ES5.1 §8.7.2 (PutValue(V, W)).
func PutValue(vm *VM, v JSValue, w JSValue) error {
	ref, ok := v.(*Reference)
	if !ok {
		return vm.ThrowReferenceError("invalid assignment target")
	}
	if ref.isUnresolvable {
		if ref.strict {
			return vm.ThrowReferenceError("%s is not defined", ref.name)
		}
		vm.emitUndeclaredGlobalVariableCreated(ref.name)
		return vm.GlobalObject.Put(vm, ref.name, w, false)
	}
	if envBase, ok := ref.base.(envRefBase); ok {
		return envBase.record.SetMutableBinding(vm, ref.name, w, ref.strict)
	}

	baseVal := ref.base.(JSValue)
	if err := CheckObjectCoercible(vm, baseVal); err != nil {
		return err
	}
	if obj, ok := baseVal.(*Object); ok {
		return obj.Put(vm, ref.name, w, ref.strict)
	}
	// primitive base: §8.7.2 step 7's PutValue-on-primitive-base dance
	// (assignments to a primitive's property are observably no-ops in
	// sloppy mode, a TypeError in strict mode, since CanPut never succeeds
	// against the boxed wrapper's own, non-existent own property).
	if ref.strict {
		return vm.ThrowTypeError("cannot create property '%s' on %s", ref.name, typeString(baseVal))
	}
	return nil
}
