package fmp

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Params holds the query parameters of a request. Nil values and nil
// pointers are omitted from the URL.
type Params map[string]any

// listSeparator joins symbol lists before they are query-encoded.
const listSeparator = ","

// FormatDay renders t as a day string (YYYY-MM-DD). The zero time renders as
// the empty string.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// ParseDay parses a day string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date format: %w", err)
	}
	return t, nil
}

// encode adds every present entry of p to query. A caller-supplied apikey is
// dropped so the key appears exactly once.
func (p Params) encode(query url.Values) error {
	for key, value := range p {
		if strings.EqualFold(key, "apikey") {
			continue
		}
		s, ok, err := paramString(value)
		if err != nil {
			return &ArgumentError{Argument: key, Reason: err.Error()}
		}
		if ok {
			query.Set(key, s)
		}
	}
	return nil
}

// paramString stringifies a scalar or list. ok is false for absent values.
func paramString(value any) (s string, ok bool, err error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []string:
		if len(v) == 0 {
			return "", false, nil
		}
		return strings.Join(v, listSeparator), true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case time.Time:
		if v.IsZero() {
			return "", false, nil
		}
		return FormatDay(v), true, nil
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false, nil
		}
		return v.String(), true, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false, nil
		}
		return paramString(rv.Elem().Interface())
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true, nil
	}
	return "", false, fmt.Errorf("unsupported parameter type %T", value)
}
