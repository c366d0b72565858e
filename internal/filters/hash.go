package filters

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// SortHashByValueName is the name templates call the filter by
const SortHashByValueName = "sort_hash_by_value"

// Entry is a template-facing pair returned by SortHashByValue.
// Size is the element count of Value.
type Entry struct {
	Key   any
	Value any
	Size  int
}

// SortHashByValue orders the entries of an arbitrary map by descending size
// of their values. Values must be slices, arrays, maps, strings, channels or
// implement Sized; anything else fails with a *TypeMismatchError before any
// output is produced. A nil argument yields an empty result.
func SortHashByValue(mapping any) ([]Entry, error) {
	entries := []Entry{}
	if mapping == nil {
		return entries, nil
	}

	rv := reflect.ValueOf(mapping)
	if rv.Kind() != reflect.Map {
		return nil, &TypeMismatchError{Filter: SortHashByValueName, Value: mapping}
	}

	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		value := iter.Value()

		size, ok := sizeOf(value)
		if !ok {
			return nil, &TypeMismatchError{
				Filter: SortHashByValueName,
				Key:    key,
				HasKey: true,
				Value:  value.Interface(),
			}
		}

		entries = append(entries, Entry{Key: key, Value: value.Interface(), Size: size})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Size != b.Size {
			return cmp.Compare(b.Size, a.Size)
		}
		return compareKeys(a.Key, b.Key)
	})

	return entries, nil
}

func sizeOf(v reflect.Value) (int, bool) {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0, false
		}
		if s, ok := v.Interface().(Sized); ok {
			return s.Len(), true
		}
		v = v.Elem()
	}

	if v.CanInterface() {
		if s, ok := v.Interface().(Sized); ok {
			return s.Len(), true
		}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return v.Len(), true
	default:
		return 0, false
	}
}

// compareKeys orders keys by kind first, then natively for basic kinds and by
// printed form otherwise, so map[any]V input still sorts deterministically.
func compareKeys(a, b any) int {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		return cmp.Compare(av.Kind(), bv.Kind())
	}

	switch av.Kind() {
	case reflect.String:
		return cmp.Compare(av.String(), bv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(av.Int(), bv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(av.Uint(), bv.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(av.Float(), bv.Float())
	}

	if c := cmp.Compare(fmt.Sprint(a), fmt.Sprint(b)); c != 0 {
		return c
	}
	return cmp.Compare(fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b))
}
