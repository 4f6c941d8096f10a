package fmp

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Kind is the primitive type of a shape field.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindDate
	KindBool
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "boolean"
	case KindURL:
		return "url"
	}
	return "unknown"
}

// Field declares one expected member of a response record.
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Shape declares the records of a response: a JSON array of objects, each
// carrying at least Fields. Members not declared are kept untouched.
type Shape struct {
	Name   string
	Fields []Field
}

// NewShape declares a shape.
func NewShape(name string, fields ...Field) *Shape {
	return &Shape{Name: name, Fields: fields}
}

// Extend returns a copy of s named name with fields appended.
func (s *Shape) Extend(name string, fields ...Field) *Shape {
	out := &Shape{Name: name, Fields: make([]Field, 0, len(s.Fields)+len(fields))}
	out.Fields = append(out.Fields, s.Fields...)
	out.Fields = append(out.Fields, fields...)
	return out
}

// dateLayouts are the ISO-like layouts the vendor emits.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Validate checks v against s and returns a coerced copy: numeric strings
// become float64, date strings become time.Time and nullable fields accept
// null or absence. Every mismatch is reported.
func (s *Shape) Validate(v any) (any, []Issue) {
	records, ok := v.([]any)
	if !ok {
		return nil, []Issue{{Path: "", Message: "expected array, got " + typeName(v)}}
	}

	var issues []Issue
	out := make([]any, len(records))
	for i, r := range records {
		path := "[" + strconv.Itoa(i) + "]"
		record, ok := r.(map[string]any)
		if !ok {
			issues = append(issues, Issue{Path: path, Message: "expected object, got " + typeName(r)})
			continue
		}

		coerced := make(map[string]any, len(record))
		for k, fv := range record {
			coerced[k] = fv
		}
		for _, f := range s.Fields {
			fv, present := record[f.Name]
			if !present || fv == nil {
				if f.Nullable {
					coerced[f.Name] = nil
					continue
				}
				msg := "required"
				if present {
					msg = "expected " + f.Kind.String() + ", got null"
				}
				issues = append(issues, Issue{Path: path + "." + f.Name, Message: msg})
				continue
			}
			cv, err := coerce(f.Kind, fv)
			if err != nil {
				issues = append(issues, Issue{Path: path + "." + f.Name, Message: err.Error()})
				continue
			}
			coerced[f.Name] = cv
		}
		out[i] = coerced
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case json.Number:
			return parseNumber(n.String())
		case string:
			return parseNumber(n)
		}
	case KindDate:
		switch d := v.(type) {
		case time.Time:
			return d, nil
		case string:
			return parseDate(d)
		}
	case KindURL:
		if s, ok := v.(string); ok {
			u, err := url.ParseRequestURI(s)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return nil, fmt.Errorf("invalid url %q", s)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %s", kind, typeName(v))
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected number, got string %q", s)
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected date, got string %q", s)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
