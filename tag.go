package pcomb

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Base Error types for decode tag parsing errors
var (
	ErrEmptyDecodeTagName     = errors.New("decode tag name cannot be empty")
	ErrUnallowedDecodeModifer = errors.New("decode tag modifier is not allowed")
)

///////////////////////////////////////////////////////////////////////////////
// Tagged results
///////////////////////////////////////////////////////////////////////////////

// Field is a tagged record: a parse result paired with the name of the part
// of the grammar that produced it.
type Field struct {
	Name  string
	Value any
}

// Tag returns a Map function that wraps a result into a Field named name.
//
//	pcomb.Uint(4).Map(pcomb.Tag("Version"))
func Tag(name string) func(any) any {
	return func(value any) any {
		return Field{Name: name, Value: value}
	}
}

///////////////////////////////////////////////////////////////////////////////
// Decode tags
///////////////////////////////////////////////////////////////////////////////

// Decode tag grammar:
//
//	tag:
//	    pcomb:"<field_name><modifier_list>" | pcomb:"-"
//	field_name:
//	    <string> // the Name of the Field to read
//	modifier_list:
//	    [,<modifier>]^*
//	modifier:
//	    required
//
// Example: TTL uint8 `pcomb:"TTL,required"`
type DecodeTag struct {
	Name     string
	Required bool
}

var allowedDecodeModifiers = []string{RequiredDecodeModifier}

// decodeTag reads the decode tag of field. ok is false if the field has no
// tag or is explicitly skipped.
func decodeTag(field reflect.StructField) (tag DecodeTag, ok bool, err error) {
	raw, found := field.Tag.Lookup(DecodeTagName)
	if !found || raw == SkipDecodeTag {
		return DecodeTag{}, false, nil
	}

	parts := strings.Split(raw, DecodeTagDelimiter)
	tag.Name = strings.TrimSpace(parts[0])
	if tag.Name == "" {
		return DecodeTag{}, false, fmt.Errorf("%w: field %s", ErrEmptyDecodeTagName, field.Name)
	}

	for _, modifier := range parts[1:] {
		modifier = strings.TrimSpace(modifier)
		if modifier == "" {
			continue
		}
		if !slices.Contains(allowedDecodeModifiers, modifier) {
			return DecodeTag{}, false, fmt.Errorf("%w: %q on field %s", ErrUnallowedDecodeModifer, modifier, field.Name)
		}
		if modifier == RequiredDecodeModifier {
			tag.Required = true
		}
	}

	return tag, true, nil
}
