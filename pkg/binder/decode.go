package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var errNotStructPointer = errors.New("target must be a non-nil pointer to struct")

// decodeValues copies values into the struct behind v, matching keys by the
// tag name. Fields without a key in values keep their current value.
func decodeValues(v any, tag string, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errNotStructPointer
	}
	rv = rv.Elem()

	for i := range rv.NumField() {
		sf := rv.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		key := fieldKey(sf, tag)
		if key == "" {
			continue
		}
		raw := values[key]
		if len(raw) == 0 {
			continue
		}
		if err := assign(rv.Field(i), raw); err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
	}
	return nil
}

// fieldKey returns "" for fields tagged "-".
func fieldKey(sf reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(sf.Name)
	}
	return name
}

// assign stores raw into dst. Slices receive every value, split on commas;
// scalars receive the first.
func assign(dst reflect.Value, raw []string) error {
	switch dst.Kind() {
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), raw)
	case reflect.Slice:
		var parts []string
		for _, r := range raw {
			parts = append(parts, strings.Split(r, ",")...)
		}
		out := reflect.MakeSlice(dst.Type(), len(parts), len(parts))
		for i, p := range parts {
			if err := assign(out.Index(i), []string{strings.TrimSpace(p)}); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	return assignScalar(dst, raw[0])
}

func assignScalar(dst reflect.Value, s string) error {
	var err error
	switch k := dst.Kind(); {
	case k == reflect.String:
		dst.SetString(s)
	case k == reflect.Bool:
		var b bool
		b, err = parseBool(s)
		dst.SetBool(b)
	case dst.CanInt():
		var n int64
		if n, err = strconv.ParseInt(s, 10, dst.Type().Bits()); err == nil {
			dst.SetInt(n)
		}
	case dst.CanUint():
		var n uint64
		if n, err = strconv.ParseUint(s, 10, dst.Type().Bits()); err == nil {
			dst.SetUint(n)
		}
	case dst.CanFloat():
		var n float64
		if n, err = strconv.ParseFloat(s, dst.Type().Bits()); err == nil {
			dst.SetFloat(n)
		}
	default:
		return fmt.Errorf("unsupported kind %s", k)
	}
	if err != nil {
		return fmt.Errorf("invalid %s value %q", dst.Kind(), s)
	}
	return nil
}

// parseBool also accepts the values HTML checkboxes and selects send.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// trimStrings trims whitespace from every settable string reachable from v.
func trimStrings(v any) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		trim(rv.Elem())
	}
}

func trim(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(strings.TrimSpace(rv.String()))
		}
	case reflect.Struct:
		for i := range rv.NumField() {
			if f := rv.Field(i); f.CanSet() {
				trim(f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			trim(rv.Index(i))
		}
	case reflect.Pointer:
		if !rv.IsNil() {
			trim(rv.Elem())
		}
	}
}
