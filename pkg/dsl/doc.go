/*
Package dsl provides a fluent builder for constructing automata in Go code.

It is the programmatic alternative to YAML or JSON definition files and is
mostly useful for tests and for automata generated at runtime.

Example usage:

	b := dsl.New("ends-with-01")

	b.Add("q0").Start().
		On("0", "q0", "q1").
		On("1", "q0")
	b.Add("q1").On("1", "q2")
	b.Add("q2").Final()

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	a.Accepts("1101") // true

Targets may name states that are added later; they are resolved when the
definition is compiled.
*/
package dsl
