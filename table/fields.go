package table

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// FieldLister is implemented by records that expose their own field order.
type FieldLister interface {
	FieldNames() []string
	FieldValue(name string) (any, bool)
}

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered field list. It preserves the key order of its source,
// which Go maps cannot.
type Record []Field

func (r Record) FieldNames() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Name
	}
	return out
}

func (r Record) FieldValue(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of name or appends a new field.
func (r Record) Set(name string, v any) Record {
	for i := range r {
		if r[i].Name == name {
			r[i].Value = v
			return r
		}
	}
	return append(r, Field{Name: name, Value: v})
}

// InferColumns derives one column per field of sample.
//
// Order rules:
//   - FieldLister: its own order
//   - struct: exported fields in declaration order
//   - map with string keys: sorted keys
//
// Anything else yields no columns.
func InferColumns(sample any) []Column {
	names := FieldNames(sample)
	if len(names) == 0 {
		return nil
	}
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Field: n, Header: n}
	}
	return cols
}

// FieldNames lists the field names of rec using the InferColumns rules.
func FieldNames(rec any) []string {
	if rec == nil {
		return nil
	}
	if fl, ok := rec.(FieldLister); ok {
		return fl.FieldNames()
	}

	v := indirect(reflect.ValueOf(rec))
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Struct:
		fields := structFieldsOf(v.Type())
		out := make([]string, len(fields))
		for i, f := range fields {
			out[i] = f.name
		}
		return out
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		out := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			out = append(out, k.String())
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}

// FieldValue reads field name from rec. Nil pointers, nil maps, nil slices,
// and nil interfaces inside rec are reported as a nil value.
func FieldValue(rec any, name string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	if fl, ok := rec.(FieldLister); ok {
		v, ok := fl.FieldValue(name)
		if !ok {
			return nil, false
		}
		return normalizeNil(v), true
	}

	v := indirect(reflect.ValueOf(rec))
	if !v.IsValid() {
		return nil, false
	}
	switch v.Kind() {
	case reflect.Struct:
		for _, f := range structFieldsOf(v.Type()) {
			if f.name == name {
				return valueInterface(v.FieldByIndex(f.index)), true
			}
		}
		return nil, false
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return valueInterface(mv), true
	default:
		return nil, false
	}
}

type structField struct {
	name  string
	index []int
}

var structFieldCache sync.Map // reflect.Type -> []structField

func structFieldsOf(t reflect.Type) []structField {
	if cached, ok := structFieldCache.Load(t); ok {
		return cached.([]structField)
	}

	out := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, skip := fieldName(sf)
		if skip {
			continue
		}
		out = append(out, structField{name: name, index: sf.Index})
	}

	actual, _ := structFieldCache.LoadOrStore(t, out)
	return actual.([]structField)
}

// fieldName resolves the column name from the `table` tag, then the `yaml`
// tag, then the Go field name.
func fieldName(sf reflect.StructField) (string, bool) {
	for _, key := range []string{"table", "yaml"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return sf.Name, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func valueInterface(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return normalizeNil(v.Interface())
}

func normalizeNil(x any) any {
	if x == nil {
		return nil
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return x
}
