// Package engine implements the core of a static-analysis engine that
// interprets ECMAScript 5.1 source abstractly at compile time: it tracks
// values, object identities, property descriptors and scope chains while
// tolerating branches whose runtime outcome is indeterminate.
package engine

import "fmt"

// JSValue is the variant type at the root of the abstract value model. Every
// concrete value type below implements it.
type JSValue interface {
	Category() ValueKind
}

// ValueKind tags a JSValue with its ES5.1 type, plus the two analysis-only
// additions (Reference, Unknown).
type ValueKind uint8

const (
	KindUndefined ValueKind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindReference
	KindUnknown
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// Undefined is the unique Undefined value.
type Undefined struct{}

func (Undefined) Category() ValueKind { return KindUndefined }

// Null is the unique Null value.
type Null struct{}

func (Null) Category() ValueKind { return KindNull }

// Boolean wraps an IEEE boolean.
type Boolean bool

func (Boolean) Category() ValueKind { return KindBoolean }

// Number wraps an IEEE 754 double, matching ES5.1's single numeric type.
type Number float64

func (Number) Category() ValueKind { return KindNumber }

// String is an immutable ES5.1 string. Numeric-indexed character access and
// `.length` are synthesized on read rather than stored, see StringCharAt
// and the String override in [[GetOwnProperty]] (descriptor.go).
type String string

func (String) Category() ValueKind { return KindString }

// Unknown is the engine's distinguished value for "statically
// indeterminate": every operation that touches it either yields Unknown or
// is explicitly recorded as indeterminate by its caller. It carries no
// value semantics of its own.
type Unknown struct{}

func (Unknown) Category() ValueKind { return KindUnknown }

// MakeUnknown constructs an Unknown value, enforcing the exact-mode
// invariant that no Unknown may ever be created while ExactMode is set.
// Every call site that could introduce indeterminacy must go through this
// constructor rather than using the Unknown{} literal directly, so the
// invariant has a single chokepoint to audit.
func (vm *VM) MakeUnknown() JSValue {
	if vm.Config.ExactMode {
		panic("bug: attempted to construct Unknown while running in exact mode")
	}
	return Unknown{}
}

// Name identifies a property. Symbols are out of ES5.1 scope but the slot is
// kept as its own type because the built-in library's well-known string
// names ("toString", "valueOf", ...) benefit from a single comparable key
// type shared with any future symbol-like extension.
type Name struct {
	text string
}

func PropName(s string) Name { return Name{text: s} }

func (n Name) String() string { return n.text }

// FunctionFlags carries invocation-time flags threaded through Invoke.
type FunctionFlags struct {
	IsNew bool

	// AlwaysInvoke overrides Config.InvokeMethods for this one call site,
	// forcing the closure body to actually execute even when the engine
	// would otherwise decline and substitute Unknown. Set by call sites
	// that need a real value back (e.g. a getter invoked for its result)
	// regardless of the global invoke policy.
	AlwaysInvoke bool
}

// NativeFunc is the signature of a host (Go) function backing a built-in.
type NativeFunc func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error)

// FunctionData holds the parts of an Object that make it callable, whether a
// native host function or a closure over AST + lexical environment.
type FunctionData struct {
	IsStrict     bool
	Native       NativeFunc
	ParamNames   []string
	Body         Statement
	Closure      *LexicalEnvironment
	Name         string
	Filename     string
	ReturnUnknown bool // set during a call whose return value ever depended on Unknown
}

// Object is the sole composite value in the model: every ES5.1 object,
// array, function, Date, RegExp, Arguments object, and Error instance is a
// *Object distinguished by ClassName and optional host data.
type Object struct {
	Prototype  *Object
	ClassName  string
	Extensible bool

	properties map[Name]*PropertyDescriptor
	// insertion order, needed for Object.keys/for-in and JSON.stringify's
	// deterministic key order; Go maps don't preserve it.
	keyOrder []Name

	// host data: at most one of these is meaningful for a given ClassName.
	// Array elements live in properties/keyOrder like any other indexed
	// property (see applyArrayLengthOverride) rather than a separate slot,
	// so ordinary property access and Array.prototype methods can't disagree
	// about what an array holds.
	Function *FunctionData
	Prim     JSValue // ClassName == "Number"|"String"|"Boolean": boxed primitive
	Date     *DateData
	RegExp   *RegExpData
	ArgsMap  *ArgumentsParameterMap // ClassName == "Arguments", non-strict only

	// creationEnv is the lexical environment of the execution context active
	// when this object was created: its "creation closure". Used by
	// ambiguous-mode writes to decide whether a mutation is local to the
	// object's birth scope.
	creationEnv *LexicalEnvironment

	// alternate-values map, keyed first by property name then by
	// skipped-section id: speculative writes made while a skipped-mode dry
	// run is active, kept out of the primary slot until/unless promoted.
	alternates map[Name]map[SkippedSectionID]JSValue
}

func (*Object) Category() ValueKind { return KindObject }

// NewObject allocates a plain object with the given prototype (nil for the
// root Object.prototype) and no host data, extensible by default per
// ES5.1 §15.2.2.1.
func NewObject(proto *Object) *Object {
	return &Object{
		Prototype:  proto,
		ClassName:  "Object",
		Extensible: true,
		properties: make(map[Name]*PropertyDescriptor),
	}
}

// IsCallable reports whether o has a [[Call]] internal method, i.e. it is a
// function object (native or AST-backed).
func (o *Object) IsCallable() bool {
	return o != nil && o.Function != nil
}

// DateData backs className="Date" host objects. Date arithmetic beyond
// construction-time capture is Unknown outside exact mode: wall-clock time
// is not statically knowable from source alone.
type DateData struct {
	// UnixMillis is only meaningful when Known is true; otherwise the date
	// value is indeterminate and every getter on it must answer Unknown.
	UnixMillis float64
	Known      bool
}

// RegExpData backs className="RegExp" host objects, wrapping a compiled Go
// regexp where the ECMAScript pattern translates cleanly; Source/Flags are
// always kept so `.source`/`.flags`/`.toString()` work even when Compiled is
// nil (pattern used a non-ECMA-compatible Go regex extension we declined to
// translate, see builtins_regexp.go).
type RegExpData struct {
	Source     string
	Flags      string
	Global     bool
	IgnoreCase bool
	Multiline  bool
	Compiled   *compiledRegexp
	LastIndex  int
}

// ArgumentsParameterMap implements the non-strict arguments-object alias of
// ES5.1 §10.6: indices map to the name of the formal parameter they alias,
// until a [[DefineOwnProperty]] on that index breaks the link.
type ArgumentsParameterMap struct {
	// IndexToParam maps a numeric argument index to the currently-aliased
	// parameter name, absent once the link for that index has been broken.
	IndexToParam map[int]Name
	Env          *LexicalEnvironment
}
