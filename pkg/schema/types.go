package schema

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "symbol").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// SymbolType validates a single character. YAML turns bare digits into
// integers, so single-digit integers are accepted too.
type SymbolType struct{}

func (t *SymbolType) Name() string { return "symbol" }

func (t *SymbolType) Validate(value any) error {
	switch v := value.(type) {
	case string:
		if utf8.RuneCountInString(v) != 1 {
			return fmt.Errorf("expected a single character, got %q", v)
		}
		return nil
	case int, int64, uint64, float64:
		s := fmt.Sprint(v)
		if len(s) != 1 {
			return fmt.Errorf("expected a single character, got %s", s)
		}
		return nil
	default:
		return fmt.Errorf("expected symbol, got %T", value)
	}
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}

	// Validate each element
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// RecordType validates a nested object against its own schema.
type RecordType struct {
	fields   Schema
	required []string
}

func (t *RecordType) Name() string { return "record" }

func (t *RecordType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	return Validate(t.fields, m, t.required...)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Symbol creates a single-character validator.
func Symbol() Type { return &SymbolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Record creates a validator for nested objects.
func Record(fields Schema, required ...string) Type {
	return &RecordType{fields: fields, required: required}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
