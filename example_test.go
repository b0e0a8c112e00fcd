package nfa_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/pkg/adapters/memory"
)

// ExampleNew_memory demonstrates how to use the Engine with an in-memory definition.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNew_memory() {
	loader := memory.NewLoader(map[string]string{
		"example": `
name: example
alphabet: [0, 1]
states: [q0, q1]
start: q0
final: [q1]
transitions:
  - {from: q0, on: 0, to: [q0, q1]}
  - {from: q0, on: 1, to: [q0]}
  - {from: q0, on: e, to: [q1]}
`,
	})

	// We leave path empty ("") because we are providing a loader.
	engine, err := nfa.New("", nfa.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	accepted, _ := engine.Accepts(ctx, "example", "0")
	copies, _ := engine.MaxCopies(ctx, "example", "00")
	deterministic, _ := engine.IsDeterministic(ctx, "example")

	fmt.Println(accepted, copies, deterministic)
	// Output: true 2 false
}
