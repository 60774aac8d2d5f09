package content

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is a decoded mapping that remembers the order its keys were declared in.
// The YAML loader produces Records; JSON and TOML documents decode to plain maps.
type Record struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// ToList coerces an absent value, a single item or a list into a list.
func ToList(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	case string, Record, map[string]any:
		return []any{t}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

// DisplayText returns a plain string, or the text/label attribute of an object.
// Anything else yields an empty string.
func DisplayText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case Record, map[string]any:
		for _, key := range []string{"text", "label"} {
			if s, ok := lookup(t, key).(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Strings flattens a string-or-list value into display strings, dropping empties.
func Strings(v any) []string {
	items := ToList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := DisplayText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FirstText returns the first non-empty display text of the candidates.
func FirstText(values ...any) string {
	for _, v := range values {
		if s := DisplayText(v); s != "" {
			return s
		}
	}
	return ""
}

// ToTable accepts either an explicit {headers, rows} mapping or a list of uniform
// records and returns the {headers, rows} shape. Malformed input yields an empty table.
func ToTable(v any) Table {
	if v == nil {
		return Table{}
	}

	if isMapping(v) {
		headers := lookup(v, "headers")
		rows := lookup(v, "rows")
		if headers == nil && rows == nil {
			return Table{}
		}
		t := Table{Headers: cellRow(headers)}
		for _, row := range ToList(rows) {
			if isMapping(row) {
				t.Rows = append(t.Rows, recordRow(row, t.Headers))
				continue
			}
			t.Rows = append(t.Rows, cellRow(row))
		}
		return t
	}

	records := ToList(v)
	if len(records) == 0 || !isMapping(records[0]) {
		return Table{}
	}

	t := Table{Headers: keysOf(records[0])}
	for _, record := range records {
		if !isMapping(record) {
			continue
		}
		t.Rows = append(t.Rows, recordRow(record, t.Headers))
	}
	return t
}

func recordRow(record any, headers []string) []string {
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = scalarText(lookup(record, h))
	}
	return row
}

func cellRow(v any) []string {
	items := ToList(v)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = scalarText(item)
	}
	return out
}

// scalarText renders table cells, which may be numbers as well as text.
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	case Record, map[string]any:
		return DisplayText(t)
	default:
		return fmt.Sprint(t)
	}
}

func isMapping(v any) bool {
	switch v.(type) {
	case Record, map[string]any:
		return true
	}
	return false
}

// lookup reads a key from either mapping representation.
func lookup(v any, key string) any {
	switch t := v.(type) {
	case Record:
		return t.Values[key]
	case map[string]any:
		return t[key]
	}
	return nil
}

// keysOf returns declaration order for Records and sorted order for plain maps.
func keysOf(v any) []string {
	switch t := v.(type) {
	case Record:
		return append([]string(nil), t.Keys...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
	return nil
}

func intValue(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case uint64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}
