// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	url                 valid URL (http/https)
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lte=N               number <= N
//	between=min,max     number or string length between min and max (inclusive)
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Email  string  `json:"email"  validate:"required,email"`
//	    Price  float64 `json:"price"  validate:"required,gt=0"`
//	    Rating float64 `json:"rating" validate:"required,between=1,5"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates dest (a struct or pointer to struct) and returns a map of
// json field name to first failing rule message. An empty map means valid.
func Struct(dest interface{}) map[string]string {
	errs := map[string]string{}

	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errs
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errs
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}

		name := jsonName(field)
		value := v.Field(i)

		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			if rule == "nullable" && isZero(value) {
				break
			}

			if msg := apply(rule, tag, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}

	return errs
}

// HasErrors reports whether errs contains any validation failures.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func apply(rule, fullTag string, v reflect.Value) string {
	name, arg, _ := strings.Cut(rule, "=")

	switch name {
	case "nullable":
		return ""
	case "required":
		if isZero(v) {
			return "is required"
		}
	case "email":
		s := asString(v)
		if s != "" && !emailRe.MatchString(s) {
			return "must be a valid email address"
		}
	case "url":
		s := asString(v)
		if s == "" {
			return ""
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "must be a valid URL"
		}
	case "numeric":
		if _, ok := asNumber(v); !ok {
			return "must be a number"
		}
	case "min":
		return compareRule(v, arg, "min")
	case "max":
		return compareRule(v, arg, "max")
	case "gt":
		return numericRule(v, arg, func(a, b float64) bool { return a > b }, "must be greater than "+arg)
	case "gte":
		return numericRule(v, arg, func(a, b float64) bool { return a >= b }, "must be at least "+arg)
	case "lte":
		return numericRule(v, arg, func(a, b float64) bool { return a <= b }, "must be at most "+arg)
	case "between":
		// arg holds only the low bound; the high bound is the token after the
		// comma in the full tag.
		lo, hi, ok := betweenBounds(fullTag)
		if !ok {
			return ""
		}
		n, isNum := asNumber(v)
		if !isNum {
			n = float64(len(asString(v)))
		}
		if n < lo || n > hi {
			return fmt.Sprintf("must be between %v and %v", lo, hi)
		}
	case "in":
		allowed := inValues(fullTag)
		s := asString(v)
		if s == "" {
			return ""
		}
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return "must be one of " + strings.Join(allowed, ", ")
	}

	return ""
}

func compareRule(v reflect.Value, arg, kind string) string {
	bound, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return ""
	}

	if n, ok := asNumber(v); ok {
		if kind == "min" && n < bound {
			return "must be at least " + arg
		}
		if kind == "max" && n > bound {
			return "must be at most " + arg
		}
		return ""
	}

	l := float64(len(asString(v)))
	if kind == "min" && l < bound {
		return "must be at least " + arg + " characters"
	}
	if kind == "max" && l > bound {
		return "must be at most " + arg + " characters"
	}
	return ""
}

func numericRule(v reflect.Value, arg string, cmp func(a, b float64) bool, msg string) string {
	bound, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return ""
	}
	n, ok := asNumber(v)
	if !ok {
		return "must be a number"
	}
	if !cmp(n, bound) {
		return msg
	}
	return ""
}

// betweenBounds extracts both bounds of a between=lo,hi rule from the raw tag
// (the comma split the rule into two tokens).
func betweenBounds(tag string) (lo, hi float64, ok bool) {
	idx := strings.Index(tag, "between=")
	if idx == -1 {
		return 0, 0, false
	}
	rest := tag[idx+len("between="):]
	parts := strings.SplitN(rest, ",", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// inValues extracts the full allow-list of an in=a,b,c rule from the raw tag.
func inValues(tag string) []string {
	idx := strings.Index(tag, "in=")
	if idx == -1 {
		return nil
	}
	rest := tag[idx+len("in="):]
	var out []string
	for _, p := range strings.Split(rest, ",") {
		p = strings.TrimSpace(p)
		if p == "" || strings.Contains(p, "=") {
			break
		}
		out = append(out, p)
	}
	return out
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return ""
}

func asNumber(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		n, err := strconv.ParseFloat(v.String(), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
