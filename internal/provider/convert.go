package provider

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Coercion selects how stored string values are turned into typed values.
type Coercion int

const (
	// Parse converts strings into booleans, numbers, durations, string lists
	// and encoding.TextUnmarshaler implementations, failing on malformed input.
	Parse Coercion = iota
	// Identity only serves string targets; every other type is a mismatch.
	Identity
)

var (
	stringType          = reflect.TypeOf("")
	durationType        = reflect.TypeOf(time.Duration(0))
	stringSliceType     = reflect.TypeOf([]string(nil))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func checkTarget(target any) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv.Elem(), nil
}

// convert writes raw into elem. elem is left untouched on failure.
func convert(raw string, elem reflect.Value, policy Coercion) error {
	typ := elem.Type()
	if policy == Identity {
		if typ != stringType {
			return errUnsupportedType
		}
		elem.SetString(raw)
		return nil
	}

	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		fresh := reflect.New(typ)
		if err := fresh.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return err
		}
		elem.Set(fresh.Elem())
		return nil
	}

	switch typ {
	case durationType:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		elem.SetInt(int64(d))
		return nil
	case stringSliceType:
		elem.Set(reflect.ValueOf(SplitList(raw)))
		return nil
	}

	trimmed := strings.TrimSpace(raw)
	switch typ.Kind() {
	case reflect.String:
		elem.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return err
		}
		elem.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(trimmed, 10, typ.Bits())
		if err != nil {
			return err
		}
		elem.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(trimmed, 10, typ.Bits())
		if err != nil {
			return err
		}
		elem.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(trimmed, typ.Bits())
		if err != nil {
			return err
		}
		elem.SetFloat(f)
	default:
		return errUnsupportedType
	}
	return nil
}

// SplitList splits a comma separated value, trimming each element and
// dropping empty ones. `\,` is a literal comma and `\\` a literal
// backslash. Any other backslash is kept as-is. The result is never nil.
func SplitList(raw string) []string {
	out := []string{}
	var current strings.Builder
	flush := func() {
		if item := strings.TrimSpace(current.String()); item != "" {
			out = append(out, item)
		}
		current.Reset()
	}
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == '\\' && i+1 < len(raw) && (raw[i+1] == ',' || raw[i+1] == '\\'):
			current.WriteByte(raw[i+1])
			i++
		case raw[i] == ',':
			flush()
		default:
			current.WriteByte(raw[i])
		}
	}
	flush()
	return out
}

// JoinList escapes and joins items so that SplitList returns them again.
// Surrounding whitespace and empty items do not survive the round trip.
func JoinList(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		item = strings.ReplaceAll(item, `\`, `\\`)
		escaped[i] = strings.ReplaceAll(item, ",", `\,`)
	}
	return strings.Join(escaped, ",")
}
