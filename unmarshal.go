package bencodex

import (
	"errors"
	"math/big"
	"reflect"
)

// Unmarshal decodes a bencodex.Value tree into an arbitrary Go value via
// reflection, the way encoding/json's Unmarshal decodes JSON text into a Go
// value. It walks the Value tree directly rather than an intermediate
// interface{} representation, and targets Bencodex's kinds (arbitrary-
// precision Integer via *big.Int, native ByteString) rather than a
// floating-point/string universe.
func Unmarshal(v Value, out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("bencodex: Unmarshal requires a non-nil pointer")
	}
	return unmarshalValue(v, rv.Elem())
}

func unmarshalValue(v Value, dst reflect.Value) error {
	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return unmarshalValue(v, dst.Elem())
	}

	if dst.Kind() == reflect.Interface && dst.Type().NumMethod() == 0 {
		dst.Set(reflect.ValueOf(toNative(v)))
		return nil
	}

	switch v.Kind() {
	case KindNull:
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	case KindBool:
		return unmarshalBool(v.AsBool(), dst)
	case KindInt:
		return unmarshalInt(v.AsInt(), dst)
	case KindBytes:
		return unmarshalBytes(v.AsBytes(), dst)
	case KindText:
		return unmarshalText(v.AsText(), dst)
	case KindList:
		return unmarshalList(v.AsList(), dst)
	case KindDict:
		return unmarshalDict(v.AsDict(), dst)
	default:
		return errors.New("bencodex: unknown value kind")
	}
}

func unmarshalBool(src bool, dst reflect.Value) error {
	if dst.Kind() != reflect.Bool {
		return errors.New("bencodex: cannot unmarshal bool into " + dst.Type().String())
	}
	dst.SetBool(src)
	return nil
}

func unmarshalInt(src *big.Int, dst reflect.Value) error {
	switch {
	case dst.Type() == bigIntType:
		dst.Set(reflect.ValueOf(*src))
		return nil
	case dst.Kind() == reflect.Int, dst.Kind() == reflect.Int8, dst.Kind() == reflect.Int16,
		dst.Kind() == reflect.Int32, dst.Kind() == reflect.Int64:
		if !src.IsInt64() {
			return errors.New("bencodex: integer overflows " + dst.Type().String())
		}
		dst.SetInt(src.Int64())
		return nil
	case dst.Kind() == reflect.Uint, dst.Kind() == reflect.Uint8, dst.Kind() == reflect.Uint16,
		dst.Kind() == reflect.Uint32, dst.Kind() == reflect.Uint64:
		if !src.IsUint64() {
			return errors.New("bencodex: integer overflows " + dst.Type().String())
		}
		dst.SetUint(src.Uint64())
		return nil
	default:
		return errors.New("bencodex: cannot unmarshal integer into " + dst.Type().String())
	}
}

func unmarshalBytes(src []byte, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.Uint8 {
			return errors.New("bencodex: cannot unmarshal bytes into " + dst.Type().String())
		}
		b := make([]byte, len(src))
		copy(b, src)
		dst.SetBytes(b)
		return nil
	case reflect.String:
		dst.SetString(string(src))
		return nil
	default:
		return errors.New("bencodex: cannot unmarshal bytes into " + dst.Type().String())
	}
}

func unmarshalText(src string, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(src)
		return nil
	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.Uint8 {
			return errors.New("bencodex: cannot unmarshal text into " + dst.Type().String())
		}
		dst.SetBytes([]byte(src))
		return nil
	default:
		return errors.New("bencodex: cannot unmarshal text into " + dst.Type().String())
	}
}

func unmarshalList(src []Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		if dst.IsNil() || dst.Len() < len(src) {
			dst.Set(reflect.MakeSlice(dst.Type(), len(src), len(src)))
		}
		for i, item := range src {
			if err := unmarshalValue(item, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Array:
		if dst.Len() < len(src) {
			return errors.New("bencodex: array too small for list")
		}
		for i, item := range src {
			if err := unmarshalValue(item, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("bencodex: cannot unmarshal list into " + dst.Type().String())
	}
}

func unmarshalDict(src []KV, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return errors.New("bencodex: map key must be string")
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		elemType := dst.Type().Elem()
		for _, kv := range src {
			keyVal := reflect.New(dst.Type().Key()).Elem()
			keyVal.SetString(keyString(kv.Key))

			elemVal := reflect.New(elemType).Elem()
			if err := unmarshalValue(kv.Value, elemVal); err != nil {
				return err
			}
			dst.SetMapIndex(keyVal, elemVal)
		}
		return nil
	case reflect.Struct:
		return unmarshalStruct(src, dst)
	default:
		return errors.New("bencodex: cannot unmarshal dictionary into " + dst.Type().String())
	}
}

func unmarshalStruct(src []KV, dst reflect.Value) error {
	typ := dst.Type()
	fields := make(map[string]int, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name, skip, _ := structTagName(sf)
		if skip {
			continue
		}
		fields[name] = i
	}

	for _, kv := range src {
		idx, ok := fields[keyString(kv.Key)]
		if !ok {
			continue
		}
		field := dst.Field(idx)
		if !field.CanSet() {
			continue
		}
		if err := unmarshalValue(kv.Value, field); err != nil {
			return err
		}
	}
	return nil
}

func keyString(k Value) string {
	if k.Kind() == KindText {
		return k.AsText()
	}
	return string(k.AsBytes())
}

// toNative converts a Value tree into plain Go values (nil, bool, *big.Int,
// []byte, string, []interface{}, map[string]interface{}) suitable for
// assigning into an interface{} or matching against an unstructured type
// during the reflect-based decode walk.
func toNative(v Value) interface{} {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.AsBool()
	case KindInt:
		return v.AsInt()
	case KindBytes:
		return v.AsBytes()
	case KindText:
		return v.AsText()
	case KindList:
		items := v.AsList()
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = toNative(item)
		}
		return out
	case KindDict:
		entries := v.AsDict()
		out := make(map[string]interface{}, len(entries))
		for _, e := range entries {
			out[keyString(e.Key)] = toNative(e.Value)
		}
		return out
	default:
		return nil
	}
}
