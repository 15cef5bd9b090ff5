// Package validate checks struct fields against `validate` tags.
//
// Rules, comma separated:
//
//	required   non-zero value; a non-nil pointer counts as present
//	nullable   skip the remaining rules when the value is absent
//	min=N      string: at least N characters; number: at least N
//	max=N      string: at most N characters; number: at most N
//	uuid       canonical UUID string
//	in=a|b|c   one of the listed values
//
// Pointers are dereferenced before min, max, uuid and in are applied.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var uuidRE = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Struct returns field name → message for every failing field of v. The
// field name is taken from the json tag.
func Struct(v any) map[string]string {
	errs := map[string]string{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		name := jsonName(field)
		value := rv.Field(i)
		rules := strings.Split(tag, ",")

		if absent(value) && contains(rules, "nullable") {
			continue
		}
		for _, rule := range rules {
			if msg := apply(rule, name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func apply(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(strings.TrimSpace(rule), "=")

	if key == "required" {
		if absent(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}

	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch key {
	case "min", "max":
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return fmt.Sprintf("The %s field has an invalid %s rule.", field, key)
		}
		size, unit := measure(v)
		if key == "min" && size < n {
			return fmt.Sprintf("The %s must be at least %s%s.", field, param, unit)
		}
		if key == "max" && size > n {
			return fmt.Sprintf("The %s must not exceed %s%s.", field, param, unit)
		}
	case "uuid":
		if v.Kind() != reflect.String || !uuidRE.MatchString(v.String()) {
			return fmt.Sprintf("The %s must be a valid UUID.", field)
		}
	case "in":
		s := fmt.Sprint(v.Interface())
		for _, allowed := range strings.Split(param, "|") {
			if s == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

// measure returns the length of strings and slices, or the numeric value.
func measure(v reflect.Value) (float64, string) {
	switch v.Kind() {
	case reflect.String:
		return float64(len([]rune(v.String()))), " characters"
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(v.Len()), " items"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), ""
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), ""
	case reflect.Float32, reflect.Float64:
		return v.Float(), ""
	}
	return 0, ""
}

func absent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func contains(rules []string, want string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == want {
			return true
		}
	}
	return false
}
