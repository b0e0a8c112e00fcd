package domain

// Transition is one AddTransition call: an edge from From to every state in
// To, labelled On.
type Transition struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`

	// On is a single alphabet symbol, or the epsilon label.
	On string `json:"on" yaml:"on" mapstructure:"on"`

	To []string `json:"to" yaml:"to" mapstructure:"to"`
}

// IsEpsilon reports whether the transition consumes no input.
func (t Transition) IsEpsilon() bool {
	return t.On == "" || t.On == EpsilonLabel || t.On == EpsilonAlias
}
