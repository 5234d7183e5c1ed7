package bencodex

import "reflect"

// findComma locates the first comma in a struct tag value, used to split
// the field name from trailing options (currently only "omitempty").
func findComma(s string) int {
	for i, c := range s {
		if c == ',' {
			return i
		}
	}
	return -1
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// structTagName parses the "bencodex" struct tag, returning the field's
// Bencodex dictionary key name, whether to skip the field entirely, and
// whether "omitempty" was requested.
func structTagName(sf reflect.StructField) (name string, skip, omitempty bool) {
	tag := sf.Tag.Get("bencodex")
	if tag == "-" {
		return "", true, false
	}
	name = sf.Name
	if tag != "" {
		if idx := findComma(tag); idx != -1 {
			name = tag[:idx]
			omitempty = tag[idx+1:] == "omitempty"
		} else {
			name = tag
		}
	}
	return name, false, omitempty
}
