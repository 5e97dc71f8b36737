package pcomb

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrInvalidDecodeTarget = errors.New("dest must be a non-nil pointer to a struct")
	ErrInvalidDecodeSource = errors.New("result must be a Field or a []any of Fields")
	ErrRequiredField       = errors.New("required field not found in result")
)

// Decode copies the tagged Fields of a parse result into the struct pointed
// to by dest. result must be a Field or a []any whose elements are Fields;
// other elements are ignored.
//
// Struct fields select a Field by name with a `pcomb:"<name>"` tag; see
// DecodeTag for the tag grammar. The last Field with a given name wins.
//
// If decoding fails, dest is zeroed and the error is returned.
//
//	type Header struct {
//	    Version uint8  `pcomb:"Version,required"`
//	    TTL     uint8  `pcomb:"TTL"`
//	}
func Decode(result any, dest any) error {
	destValue := reflect.ValueOf(dest)
	if dest == nil || destValue.Kind() != reflect.Ptr || destValue.IsNil() ||
		destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrInvalidDecodeTarget, dest)
	}

	fields, err := collectFields(result)
	if err != nil {
		return err
	}

	elem := destValue.Elem()
	if err := decodeStruct(fields, elem); err != nil {
		zeroStructFields(elem)
		return err
	}
	return nil
}

func collectFields(result any) (map[string]any, error) {
	fields := make(map[string]any)
	switch r := result.(type) {
	case Field:
		fields[r.Name] = r.Value
	case []any:
		for _, item := range r {
			if f, ok := item.(Field); ok {
				fields[f.Name] = f.Value
			}
		}
	default:
		return nil, fmt.Errorf("%w, got %T", ErrInvalidDecodeSource, result)
	}
	return fields, nil
}

///////////////////////////////////////////////////////////////////////////////
// Decode plans
///////////////////////////////////////////////////////////////////////////////

// decodeStep assigns one tagged struct field.
type decodeStep struct {
	index int
	field string
	tag   DecodeTag
}

// decodePlan is the ordered list of tagged fields of a struct type.
type decodePlan struct {
	steps []decodeStep
}

// planCache holds one decodePlan per destination struct type.
type planCache struct {
	plans map[reflect.Type]*decodePlan
	mutex sync.RWMutex
}

var plans = &planCache{plans: make(map[reflect.Type]*decodePlan)}

// get returns the plan for typ, building and caching it on first use.
func (c *planCache) get(typ reflect.Type) (*decodePlan, error) {
	c.mutex.RLock()
	plan, exists := c.plans[typ]
	c.mutex.RUnlock()

	if exists {
		return plan, nil
	}

	plan, err := newDecodePlan(typ)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.plans[typ] = plan
	c.mutex.Unlock()
	return plan, nil
}

func newDecodePlan(typ reflect.Type) (*decodePlan, error) {
	plan := &decodePlan{}
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)

		// Skip unexported fields
		if !structField.IsExported() {
			continue
		}

		tag, ok, err := decodeTag(structField)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		plan.steps = append(plan.steps, decodeStep{index: i, field: structField.Name, tag: tag})
	}
	return plan, nil
}

func decodeStruct(fields map[string]any, elem reflect.Value) error {
	plan, err := plans.get(elem.Type())
	if err != nil {
		return err
	}

	for _, step := range plan.steps {
		value, found := fields[step.tag.Name]
		if !found {
			if step.tag.Required {
				return fmt.Errorf("%w: %s (field %s)", ErrRequiredField, step.tag.Name, step.field)
			}
			continue
		}

		if err := setFieldValue(elem.Field(step.index), value); err != nil {
			return fmt.Errorf("failed to decode field %s: %w", step.field, err)
		}
	}
	return nil
}

// ParseInto runs p over input and decodes the result into dest.
//
// A failed parse is returned as its *ParseError.
func ParseInto(p *Parser, input Input, dest any) error {
	state := Run(p, input)
	if state.Failed() {
		return state.Err
	}
	return Decode(state.Result, dest)
}
