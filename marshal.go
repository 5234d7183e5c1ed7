package bencodex

import (
	"errors"
	"math/big"
	"reflect"
)

var bigIntType = reflect.TypeOf(big.Int{})

// Marshal converts an arbitrary Go value into a bencodex.Value tree by
// reflection, the way encoding/json's Marshal converts a Go value into
// JSON text. Signed integers become arbitrary-precision Integer values (via
// *big.Int, not a floating-point type), []byte becomes a native ByteString
// rather than a wrapped string, and struct/map fields use the "bencodex"
// tag instead of "json".
func Marshal(v interface{}) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}
	if bi, ok := v.(*big.Int); ok {
		if bi == nil {
			return Null(), nil
		}
		return Int(new(big.Int).Set(bi)), nil
	}
	if bi, ok := v.(big.Int); ok {
		return Int(new(big.Int).Set(&bi)), nil
	}
	return marshalReflect(reflect.ValueOf(v))
}

func marshalReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Null(), nil
		}
		return marshalReflect(rv.Elem())
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntFromInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(new(big.Int).SetUint64(rv.Uint())), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return Bytes(b), nil
		}
		return marshalArray(rv)
	case reflect.Array:
		return marshalArray(rv)
	case reflect.Map:
		return marshalMap(rv)
	case reflect.Struct:
		if rv.Type() == bigIntType {
			n := rv.Interface().(big.Int)
			return Int(&n), nil
		}
		return marshalStruct(rv)
	case reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return marshalReflect(rv.Elem())
	default:
		return Value{}, errors.New("bencodex: unsupported type: " + rv.Type().String())
	}
}

func marshalArray(rv reflect.Value) (Value, error) {
	n := rv.Len()
	items := make([]Value, n)
	for i := 0; i < n; i++ {
		item, err := marshalReflect(rv.Index(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return Value{kind: KindList, list: items}, nil
}

func marshalMap(rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return Value{}, errors.New("bencodex: map key must be string")
	}

	keys := rv.MapKeys()
	entries := make([]KV, 0, len(keys))
	for _, k := range keys {
		val, err := marshalReflect(rv.MapIndex(k))
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, KV{Key: Text(k.String()), Value: val})
	}
	return Dict(entries...), nil
}

func marshalStruct(rv reflect.Value) (Value, error) {
	typ := rv.Type()
	entries := make([]KV, 0, rv.NumField())

	for i := 0; i < rv.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name, skip, omitempty := structTagName(sf)
		if skip {
			continue
		}
		field := rv.Field(i)
		if omitempty && isEmptyValue(field) {
			continue
		}
		val, err := marshalReflect(field)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, KV{Key: Text(name), Value: val})
	}
	return Dict(entries...), nil
}
