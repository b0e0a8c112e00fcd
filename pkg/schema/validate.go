package schema

import (
	"fmt"
	"sort"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks that data only holds fields declared in schema, that each
// present field has the declared type, and that every required field exists.
// All failures are collected into an AggregateError.
func Validate(schema Schema, data map[string]any, required ...string) error {
	var errs []error

	for _, fieldName := range required {
		if _, exists := data[fieldName]; !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
		}
	}

	// Sorted for stable error output.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, fieldName := range keys {
		value := data[fieldName]
		fieldType, declared := schema[fieldName]
		if !declared {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "unknown field",
			})
			continue
		}
		if value == nil {
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Definition is the shape of an automaton definition document.
var Definition = Schema{
	"name":        String(),
	"description": String(),
	"alphabet":    Slice(Symbol()),
	"states":      Slice(String()),
	"start":       String(),
	"final":       Slice(String()),
	"transitions": Slice(Record(Schema{
		"from": String(),
		"on":   Custom("label", validateLabel),
		"to":   Slice(String()),
	}, "from", "to")),
}

// validateLabel accepts an alphabet symbol or one of the epsilon spellings.
func validateLabel(value any) error {
	if s, ok := value.(string); ok && (s == "" || s == "ε") {
		return nil
	}
	if err := Symbol().Validate(value); err != nil {
		return fmt.Errorf("expected symbol or epsilon: %w", err)
	}
	return nil
}
