package pcomb

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// Set field value with type conversion from a parse result
//
// Currently supports:
//   - nil to the zero value
//   - string or []byte to any encoding.TextUnmarshaler
//   - string/[]byte to string
//   - any integer or numeric string to int/uint kinds (with overflow checking)
//   - any integer, float or numeric string to float kinds
//   - bool, 0/1 bits, or boolean strings to bool
//   - string or []byte to []byte, []any to other slices element-wise
//   - 16 bytes or a textual UUID to uuid.UUID
//   - string to time.Time
//   - any assignable value, including to interface{}
func setFieldValue(field reflect.Value, value any) error {
	if value == nil {
		field.SetZero()
		return nil
	}

	// Values that already fit need no conversion
	if rv := reflect.ValueOf(value); rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	// Special types take raw results as well as text
	switch field.Type() {
	case UUIDType:
		return setArrayValue(field, value)
	case TimeType:
		return setStructValue(field, value)
	}

	// Check for TextUnmarshaler interface
	if text, ok := asText(value); ok && field.CanAddr() {
		if unmarshaler, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return unmarshaler.UnmarshalText(text)
		}
	}

	switch field.Kind() {
	case reflect.String:
		return setStringValue(field, value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntValue(field, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return setUintValue(field, value)
	case reflect.Float32, reflect.Float64:
		return setFloatValue(field, value)
	case reflect.Bool:
		return setBoolValue(field, value)
	case reflect.Slice:
		return setSliceValue(field, value)
	case reflect.Array:
		return setArrayValue(field, value)
	case reflect.Struct:
		return setStructValue(field, value)
	default:
		return fmt.Errorf("unsupported field type %s for value of type %T", field.Type(), value)
	}
}

func asText(value any) ([]byte, bool) {
	switch v := value.(type) {
	case string:
		return []byte(v), true
	case []byte:
		return v, true
	default:
		return nil, false
	}
}

// asInt64 converts any integer kind to int64.
func asInt64(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

// asUint64 converts any non-negative integer kind to uint64.
func asUint64(value any) (uint64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, false
		}
		return uint64(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	default:
		return 0, false
	}
}

// setStringValue sets string field values
func setStringValue(field reflect.Value, value any) error {
	text, ok := asText(value)
	if !ok {
		return fmt.Errorf("cannot set %T as string", value)
	}
	field.SetString(string(text))
	return nil
}

// setIntValue sets integer field values with overflow checking
func setIntValue(field reflect.Value, value any) error {
	intValue, ok := asInt64(value)
	if !ok {
		s, isString := value.(string)
		if !isString {
			return fmt.Errorf("cannot set %T as %s", value, field.Type())
		}
		var err error
		intValue, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("error converting value to int: %w", err)
		}
	}

	if field.OverflowInt(intValue) {
		return fmt.Errorf("value %d overflows %s", intValue, field.Type().Name())
	}

	field.SetInt(intValue)
	return nil
}

// setUintValue sets unsigned integer field values with overflow checking
func setUintValue(field reflect.Value, value any) error {
	uintValue, ok := asUint64(value)
	if !ok {
		s, isString := value.(string)
		if !isString {
			return fmt.Errorf("cannot set %v (%T) as %s", value, value, field.Type())
		}
		var err error
		uintValue, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("error converting value to uint: %w", err)
		}
	}

	if field.OverflowUint(uintValue) {
		return fmt.Errorf("value %d overflows %s", uintValue, field.Type().Name())
	}

	field.SetUint(uintValue)
	return nil
}

// setFloatValue sets float field values with overflow checking
func setFloatValue(field reflect.Value, value any) error {
	var floatValue float64
	switch v := value.(type) {
	case float64:
		floatValue = v
	case float32:
		floatValue = float64(v)
	case string:
		f, err := strconv.ParseFloat(v, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("error converting value to float: %w", err)
		}
		floatValue = f
	default:
		i, ok := asInt64(value)
		if !ok {
			return fmt.Errorf("cannot set %T as %s", value, field.Type())
		}
		floatValue = float64(i)
	}

	if field.OverflowFloat(floatValue) {
		return fmt.Errorf("value %f overflows %s", floatValue, field.Type().Name())
	}

	field.SetFloat(floatValue)
	return nil
}

// setBoolValue sets boolean field values
//
// Bits decode as booleans: 1 is true and 0 is false. Strings accept the
// common representations:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
//   - Standard boolean parsing using strconv.ParseBool
func setBoolValue(field reflect.Value, value any) error {
	if i, ok := asInt64(value); ok {
		switch i {
		case 0:
			field.SetBool(false)
			return nil
		case 1:
			field.SetBool(true)
			return nil
		default:
			return fmt.Errorf("cannot convert %d to bool", i)
		}
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot set %T as bool", value)
	}

	switch s {
	case "true", "1", "yes", "on", "True", "TRUE", "YES", "ON":
		field.SetBool(true)
		return nil
	case "false", "0", "no", "off", "False", "FALSE", "NO", "OFF":
		field.SetBool(false)
		return nil
	default:
		// Fall back to standard parsing
		boolValue, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("error converting value to bool: %w", err)
		}
		field.SetBool(boolValue)
		return nil
	}
}

// setSliceValue sets slice field values
func setSliceValue(field reflect.Value, value any) error {
	if field.Type().Elem().Kind() == reflect.Uint8 {
		if text, ok := asText(value); ok {
			field.SetBytes([]byte(string(text)))
			return nil
		}
	}

	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("cannot set %T as %s", value, field.Type())
	}

	slice := reflect.MakeSlice(field.Type(), len(items), len(items))
	for i, item := range items {
		if err := setFieldValue(slice.Index(i), item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	field.Set(slice)
	return nil
}

// setArrayValue sets array field values
func setArrayValue(field reflect.Value, value any) error {
	if field.Type() != UUIDType {
		return fmt.Errorf("unsupported array type: %s", field.Type().Name())
	}

	var (
		uuidValue uuid.UUID
		err       error
	)
	switch v := value.(type) {
	case string:
		uuidValue, err = uuid.Parse(v)
	case []byte:
		uuidValue, err = uuid.FromBytes(v)
	default:
		return fmt.Errorf("cannot set %T as UUID", value)
	}
	if err != nil {
		return fmt.Errorf("error converting value to UUID: %w", err)
	}
	field.Set(reflect.ValueOf(uuidValue))
	return nil
}

// setStructValue sets struct field values for special types
func setStructValue(field reflect.Value, value any) error {
	fieldType := field.Type()

	s, ok := value.(string)
	if fieldType != TimeType || !ok {
		return fmt.Errorf("unsupported struct type: %s", fieldType.Name())
	}

	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"15:04:05",
	}

	var (
		timeValue time.Time
		err       error
	)
	for _, format := range formats {
		if timeValue, err = time.Parse(format, s); err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("error converting value to time.Time: %w", err)
	}
	field.Set(reflect.ValueOf(timeValue))
	return nil
}

// zeroStructFields sets all settable fields of a struct to their zero
// values.
func zeroStructFields(value reflect.Value) {
	if value.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if field.CanSet() {
			field.SetZero()
		}
	}
}
