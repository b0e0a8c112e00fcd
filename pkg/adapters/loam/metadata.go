package loam

// Metadata is the frontmatter of an automaton document.
// It uses "mapstructure" tags to match the YAML keys of definition files.
// Symbols are typed loosely because YAML reads bare digits as integers.
type Metadata struct {
	Name        string             `json:"name" mapstructure:"name"`
	Description string             `json:"description" mapstructure:"description"`
	Alphabet    []any              `json:"alphabet" mapstructure:"alphabet"`
	States      []string           `json:"states" mapstructure:"states"`
	Start       string             `json:"start" mapstructure:"start"`
	Final       []string           `json:"final" mapstructure:"final"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
}

// LoaderTransition is one transition entry of the frontmatter.
type LoaderTransition struct {
	From string   `json:"from" mapstructure:"from"`
	On   any      `json:"on" mapstructure:"on"`
	To   []string `json:"to" mapstructure:"to"`
}
