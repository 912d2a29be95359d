package engine

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// setupJSONBuiltins wires JSON.parse/stringify (ES5.1 §15.12). Low-level
// tokenizing (number/string lexing, UTF-8 handling) is delegated to
// json-iterator/go, reused from the wider example pack rather than
// hand-rolled, since a JSON lexer is exactly the kind of thing the
// examples already carry a fast library for; the ES5.1-specific pieces
// (reviver walk, replacer/gap formatting, cycle detection) are hand
// written on top since no library encodes JS-object semantics over our
// own value tree.
func setupJSONBuiltins(vm *VM) {
	jsonObj := NewObject(vm.Prototypes.Object)

	defMethod(vm, jsonObj, "parse", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		textVal, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		iter := jsonAPI.BorrowIterator([]byte(string(textVal.(String))))
		defer jsonAPI.ReturnIterator(iter)
		result := readJSONValue(vm, iter)
		if iter.Error != nil {
			return nil, vm.ThrowSyntaxError("invalid JSON: %s", iter.Error)
		}
		if reviver, ok := arg(args, 1).(*Object); ok && reviver.IsCallable() {
			holder := NewObject(vm.Prototypes.Object)
			holder.setOwn(PropName(""), dataDescriptor(result, true, true, true))
			return applyReviver(vm, holder, PropName(""), reviver)
		}
		return result, nil
	})

	defMethod(vm, jsonObj, "stringify", 3, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		value := arg(args, 0)
		var replacer *Object
		if r, ok := arg(args, 1).(*Object); ok && r.IsCallable() {
			replacer = r
		}
		gap := ""
		if spaceVal := arg(args, 2); spaceVal != nil {
			if n, ok := spaceVal.(Number); ok {
				count := int(n)
				if count > 10 {
					count = 10
				}
				for i := 0; i < count; i++ {
					gap += " "
				}
			} else if s, ok := spaceVal.(String); ok {
				gap = string(s)
				if len(gap) > 10 {
					gap = gap[:10]
				}
			}
		}
		out, ok, err := stringifyValue(vm, value, replacer, gap, "", make(map[*Object]bool))
		if err != nil {
			return nil, err
		}
		if !ok {
			return Undefined{}, nil
		}
		return String(out), nil
	})

	vm.defineGlobal("JSON", jsonObj)
}

// readJSONValue decodes one JSON value off iter using jsoniter's low-level
// token API directly, rather than decoding through a Go map (whose
// iteration order is randomized) and losing the source's key order --
// object keys are the one piece of JSON.parse fidelity a generic
// map[string]any decode can't preserve.
func readJSONValue(vm *VM, iter *jsoniter.Iterator) JSValue {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null{}
	case jsoniter.BoolValue:
		return Boolean(iter.ReadBool())
	case jsoniter.NumberValue:
		return Number(iter.ReadFloat64())
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.ArrayValue:
		var elems []JSValue
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			elems = append(elems, readJSONValue(vm, iter))
			return true
		})
		return newArrayObject(vm, elems)
	case jsoniter.ObjectValue:
		obj := NewObject(vm.Prototypes.Object)
		iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
			obj.setOwn(PropName(key), dataDescriptor(readJSONValue(vm, iter), true, true, true))
			return true
		})
		return obj
	default:
		iter.Skip()
		return Null{}
	}
}

// applyReviver implements ES5.1 §15.12.2's Walk operation.
func applyReviver(vm *VM, holder *Object, name Name, reviver *Object) (JSValue, error) {
	val, err := holder.Get(vm, name)
	if err != nil {
		return nil, err
	}
	if obj, ok := val.(*Object); ok {
		if obj.ClassName == "Array" {
			for i := 0; i < arrayLength(obj); i++ {
				name := PropName(itoa(i))
				newElem, err := applyReviver(vm, obj, name, reviver)
				if err != nil {
					return nil, err
				}
				if _, isUndef := newElem.(Undefined); isUndef {
					if _, err := obj.Delete(vm, name, false); err != nil {
						return nil, err
					}
				} else {
					if err := obj.Put(vm, name, newElem, false); err != nil {
						return nil, err
					}
				}
			}
		} else {
			for _, k := range append([]Name{}, obj.OwnPropertyNames()...) {
				newElem, err := applyReviver(vm, obj, k, reviver)
				if err != nil {
					return nil, err
				}
				if _, isUndef := newElem.(Undefined); isUndef {
					if _, err := obj.Delete(vm, k, false); err != nil {
						return nil, err
					}
				} else {
					if err := obj.Put(vm, k, newElem, false); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return reviver.Invoke(vm, holder, []JSValue{String(name.String()), val}, FunctionFlags{})
}

// stringifyValue implements ES5.1 §15.12.3's Str operation. ok is false
// when the value serializes to "no representation" (undefined, a
// function, or Unknown at the top level), matching JSON.stringify's
// documented return of undefined in that case.
func stringifyValue(vm *VM, v JSValue, replacer *Object, gap, indent string, seen map[*Object]bool) (string, bool, error) {
	if obj, ok := v.(*Object); ok {
		if tj, err := obj.Get(vm, PropName("toJSON")); err == nil {
			if fn, ok := tj.(*Object); ok && fn.IsCallable() {
				replaced, err := fn.Invoke(vm, obj, nil, FunctionFlags{})
				if err != nil {
					return "", false, err
				}
				v = replaced
			}
		}
	}

	switch t := v.(type) {
	case Undefined, Unknown, nil:
		return "", false, nil
	case Null:
		return "null", true, nil
	case Boolean:
		if t {
			return "true", true, nil
		}
		return "false", true, nil
	case Number:
		return numberToString(float64(t)), true, nil
	case String:
		return quoteJSONString(string(t)), true, nil
	case *Object:
		if t.IsCallable() {
			return "", false, nil
		}
		if seen[t] {
			return "", false, vm.ThrowTypeError("converting circular structure to JSON")
		}
		seen[t] = true
		defer delete(seen, t)

		nextIndent := indent + gap
		if t.ClassName == "Array" {
			elems := arrayElements(t)
			out := "["
			for i, elem := range elems {
				s, ok, err := stringifyValue(vm, elem, replacer, gap, nextIndent, seen)
				if err != nil {
					return "", false, err
				}
				if !ok {
					s = "null"
				}
				if i > 0 {
					out += ","
				}
				if gap != "" {
					out += "\n" + nextIndent
				}
				out += s
			}
			if gap != "" && len(elems) > 0 {
				out += "\n" + indent
			}
			return out + "]", true, nil
		}

		out := "{"
		first := true
		for _, name := range t.OwnPropertyNames() {
			d := t.GetOwnProperty(name)
			if d == nil || !d.Enumerable {
				continue
			}
			propVal, err := t.Get(vm, name)
			if err != nil {
				return "", false, err
			}
			if replacer != nil {
				propVal, err = replacer.Invoke(vm, t, []JSValue{String(name.String()), propVal}, FunctionFlags{})
				if err != nil {
					return "", false, err
				}
			}
			s, ok, err := stringifyValue(vm, propVal, replacer, gap, nextIndent, seen)
			if err != nil {
				return "", false, err
			}
			if !ok {
				continue
			}
			if !first {
				out += ","
			}
			first = false
			if gap != "" {
				out += "\n" + nextIndent
			}
			out += quoteJSONString(name.String()) + ":"
			if gap != "" {
				out += " "
			}
			out += s
		}
		if gap != "" && !first {
			out += "\n" + indent
		}
		return out + "}", true, nil
	default:
		return "", false, nil
	}
}

func quoteJSONString(s string) string {
	encoded, _ := jsonAPI.MarshalToString(s)
	return encoded
}
