// Package schema validates the raw shape of automaton definition documents
// before they are decoded.
//
// A Schema maps field names to Types. Validate reports unknown fields, type
// mismatches and missing required fields in one AggregateError so that a
// definition author sees every problem at once:
//
//	raw := map[string]any{"name": "bin", "alphabet": []any{"0", "11"}}
//	if err := schema.Validate(schema.Definition, raw, "name"); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// The package has no dependencies beyond the standard library.
package schema
