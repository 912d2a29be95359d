package engine

import (
	"regexp"

	"github.com/robertkrimen/otto/ast"
)

// compiledRegexp wraps a Go regexp compiled from an ECMAScript pattern.
// Not every ECMAScript regular expression pattern has a direct Go
// translation (Go's RE2 engine lacks backreferences and lookaround); when
// translation fails, Compiled stays nil and match operations answer
// Unknown rather than panicking.
type compiledRegexp struct {
	re *regexp.Regexp
}

func newRegExpLiteral(vm *VM, lit *ast.RegExpLiteral) *Object {
	return buildRegExpObject(vm, lit.Pattern, lit.Flags)
}

func buildRegExpObject(vm *VM, pattern, flags string) *Object {
	obj := NewObject(vm.Prototypes.RegExp)
	obj.ClassName = "RegExp"
	data := &RegExpData{
		Source:     pattern,
		Flags:      flags,
		Global:     containsRune(flags, 'g'),
		IgnoreCase: containsRune(flags, 'i'),
		Multiline:  containsRune(flags, 'm'),
	}
	goPattern := translateRegExpPattern(pattern, data.IgnoreCase, data.Multiline)
	if re, err := regexp.Compile(goPattern); err == nil {
		data.Compiled = &compiledRegexp{re: re}
	}
	obj.RegExp = data
	obj.setOwn(PropName("source"), dataDescriptor(String(pattern), false, false, false))
	obj.setOwn(PropName("global"), dataDescriptor(Boolean(data.Global), false, false, false))
	obj.setOwn(PropName("ignoreCase"), dataDescriptor(Boolean(data.IgnoreCase), false, false, false))
	obj.setOwn(PropName("multiline"), dataDescriptor(Boolean(data.Multiline), false, false, false))
	obj.setOwn(PropName("lastIndex"), dataDescriptor(Number(0), true, false, false))
	return obj
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

// translateRegExpPattern maps the handful of ECMAScript regex syntax
// elements that differ from RE2 inline-flag syntax; anything more exotic
// (lookahead, backreferences) is left untranslated and regexp.Compile will
// simply fail, which buildRegExpObject treats as "not staticly checkable".
func translateRegExpPattern(pattern string, ignoreCase, multiline bool) string {
	prefix := ""
	if ignoreCase {
		prefix += "i"
	}
	if multiline {
		prefix += "m"
	}
	if prefix == "" {
		return pattern
	}
	return "(?" + prefix + ")" + pattern
}

func setupRegExpBuiltins(vm *VM) {
	proto := vm.Prototypes.RegExp

	defMethod(vm, proto, "test", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := this.(*Object)
		if !ok || obj.RegExp == nil {
			return nil, vm.ThrowTypeError("RegExp.prototype.test called on incompatible receiver")
		}
		if obj.RegExp.Compiled == nil {
			return vm.MakeUnknown(), nil
		}
		sv, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		return Boolean(obj.RegExp.Compiled.re.MatchString(string(sv.(String)))), nil
	})
	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := this.(*Object)
		if !ok || obj.RegExp == nil {
			return nil, vm.ThrowTypeError("RegExp.prototype.toString called on incompatible receiver")
		}
		return String("/" + obj.RegExp.Source + "/" + obj.RegExp.Flags), nil
	})

	ctor := nativeMethod(vm, "RegExp", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		pattern := ""
		if sv, ok := arg(args, 0).(String); ok {
			pattern = string(sv)
		} else if obj, ok := arg(args, 0).(*Object); ok && obj.RegExp != nil {
			pattern = obj.RegExp.Source
		}
		fl := ""
		if sv, ok := arg(args, 1).(String); ok {
			fl = string(sv)
		}
		return buildRegExpObject(vm, pattern, fl), nil
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	vm.defineGlobal("RegExp", ctor)
}
