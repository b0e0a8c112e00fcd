package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_DefinitionOK(t *testing.T) {
	data := map[string]any{
		"name":     "bin",
		"alphabet": []any{"0", 1},
		"states":   []any{"q0", "q1"},
		"start":    "q0",
		"final":    []any{"q1"},
		"transitions": []any{
			map[string]any{"from": "q0", "on": "0", "to": []any{"q0", "q1"}},
			map[string]any{"from": "q0", "on": "e", "to": []any{"q1"}},
			map[string]any{"from": "q1", "on": "ε", "to": []any{"q1"}},
			map[string]any{"from": "q1", "to": []any{"q0"}},
		},
	}

	if err := Validate(Definition, data, "name"); err != nil {
		t.Fatalf("expected valid definition, got %v", err)
	}
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	data := map[string]any{
		"alphabet": []any{"01"},
		"states":   "q0",
		"colour":   "blue",
	}

	err := Validate(Definition, data, "name")
	if err == nil {
		t.Fatal("expected errors")
	}

	errs := ValidationErrors(err)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), err)
	}

	keys := make([]string, 0, len(errs))
	for _, e := range errs {
		var ve *ValidationError
		if !errors.As(e, &ve) {
			t.Fatalf("expected *ValidationError, got %T", e)
		}
		keys = append(keys, ve.Key)
	}
	want := []string{"name", "alphabet", "colour", "states"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	if !strings.Contains(err.Error(), "4 validation errors") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidate_TransitionRecord(t *testing.T) {
	data := map[string]any{
		"transitions": []any{
			map[string]any{"on": "ab", "to": []any{"q1"}},
		},
	}
	err := Validate(Definition, data)
	if err == nil {
		t.Fatal("expected error for bad transition")
	}
	msg := err.Error()
	if !strings.Contains(msg, "element 0") {
		t.Errorf("expected element index in %q", msg)
	}
}

func TestSymbolType(t *testing.T) {
	ok := []any{"a", "ε", 0, 7, int64(3)}
	for _, v := range ok {
		if err := Symbol().Validate(v); err != nil {
			t.Errorf("Symbol().Validate(%v) = %v", v, err)
		}
	}
	bad := []any{"", "ab", 10, true, []any{"a"}}
	for _, v := range bad {
		if err := Symbol().Validate(v); err == nil {
			t.Errorf("Symbol().Validate(%v) should fail", v)
		}
	}
}

func TestAggregateError_Append(t *testing.T) {
	var aggr AggregateError
	if aggr.ErrOrNil() != nil {
		t.Fatal("empty aggregate should be nil")
	}

	aggr.Append(nil)
	aggr.Append(&ValidationError{Key: "a", Reason: "bad"})
	aggr.Append(&AggregateError{Errors: []error{
		&ValidationError{Key: "b", Reason: "bad"},
		&ValidationError{Key: "c", Reason: "bad", Value: 3},
	}})

	if len(aggr.Errors) != 3 {
		t.Fatalf("expected flattened 3 errors, got %d", len(aggr.Errors))
	}
	if aggr.ErrOrNil() == nil {
		t.Fatal("non-empty aggregate should be returned")
	}
	if got := aggr.Errors[2].Error(); got != `field "c": bad (got 3)` {
		t.Errorf("unexpected message %q", got)
	}
}

func TestValidationErrors_NonAggregate(t *testing.T) {
	if ValidationErrors(errors.New("plain")) != nil {
		t.Error("plain error should yield nil")
	}
}
