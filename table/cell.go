package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// CellKind tags how a cell value is presented.
type CellKind uint8

const (
	// CellEmpty is a missing or nil value.
	CellEmpty CellKind = iota
	// CellScalar renders as its textual form.
	CellScalar
	// CellBool renders as a read-only checked indicator.
	CellBool
	// CellStructured renders as a compact marker with Detail shown on demand.
	CellStructured
	// CellCustom is produced by a Column.Render function.
	CellCustom
)

// Cell is the resolved presentation of one value.
type Cell struct {
	Kind CellKind
	// Text is the textual form. For structured values it is compact JSON.
	Text    string
	Checked bool
	// Detail is the pretty-printed structure of a CellStructured value.
	Detail string
}

// CellOf dispatches v to its presentation kind.
func CellOf(v any) Cell {
	v = normalizeNil(v)
	if v == nil {
		return Cell{Kind: CellEmpty}
	}
	if b, ok := v.(bool); ok {
		return Cell{Kind: CellBool, Checked: b, Text: fmt.Sprint(b)}
	}
	if isStructured(v) {
		return Cell{Kind: CellStructured, Text: compactJSON(v), Detail: prettyJSON(v)}
	}
	return Cell{Kind: CellScalar, Text: scalarText(v)}
}

// CellFor resolves the cell of rec under col, honoring col.Render.
func CellFor(rec any, col Column) Cell {
	v, _ := FieldValue(rec, col.Field)
	if col.Render != nil {
		return Cell{Kind: CellCustom, Text: col.Render(v)}
	}
	return CellOf(v)
}

// ValueText is the string form used for sorting. Structured values use
// compact JSON. ok is false for nil values.
func ValueText(v any) (string, bool) {
	v = normalizeNil(v)
	if v == nil {
		return "", false
	}
	if isStructured(v) {
		return compactJSON(v), true
	}
	return scalarText(v), true
}

// FilterText is the string a filter query is matched against. Structured
// values contribute their leaf values joined by spaces, so key names never
// match. ok is false for nil values, which never match a filter.
func FilterText(v any) (string, bool) {
	v = normalizeNil(v)
	if v == nil {
		return "", false
	}
	if !isStructured(v) {
		return scalarText(v), true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v), true
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return string(b), true
	}
	var leaves []string
	appendLeaves(&leaves, tree)
	return strings.Join(leaves, " "), true
}

// appendLeaves walks decoded JSON depth first; object keys in sorted order.
func appendLeaves(dst *[]string, node any) {
	switch n := node.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendLeaves(dst, n[k])
		}
	case []any:
		for _, e := range n {
			appendLeaves(dst, e)
		}
	default:
		*dst = append(*dst, fmt.Sprint(n))
	}
}

// ValueTextOr is ValueText with a fallback for nil values. It is convenient
// inside Column.Render functions.
func ValueTextOr(v any, fallback string) string {
	if s, ok := ValueText(v); ok {
		return s
	}
	return fallback
}

func scalarText(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func isStructured(v any) bool {
	switch v.(type) {
	case time.Time, fmt.Stringer, error:
		return false
	}
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
