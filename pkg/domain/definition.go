package domain

// EpsilonLabel is how an epsilon transition is written in a definition.
// EpsilonAlias is accepted as well, and so is an empty label.
const (
	EpsilonLabel = "e"
	EpsilonAlias = "ε"
)

// Definition is the serializable description of one automaton.
// It is what loaders return and what the compiler turns into a runnable
// automaton by replaying construction calls in field order.
type Definition struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Alphabet lists single-character symbols. The epsilon label is not a symbol.
	Alphabet []string `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`

	States []string `json:"states" yaml:"states" mapstructure:"states"`
	Start  string   `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	Final  []string `json:"final,omitempty" yaml:"final,omitempty" mapstructure:"final"`

	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty" mapstructure:"transitions"`
}

// Clone returns a deep copy so stores can hand out definitions without sharing slices.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	c := *d
	c.Alphabet = append([]string(nil), d.Alphabet...)
	c.States = append([]string(nil), d.States...)
	c.Final = append([]string(nil), d.Final...)
	c.Transitions = make([]Transition, len(d.Transitions))
	for i, t := range d.Transitions {
		t.To = append([]string(nil), t.To...)
		c.Transitions[i] = t
	}
	return &c
}
