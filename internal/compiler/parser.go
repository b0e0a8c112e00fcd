package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a Definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a JSON or YAML document into a Definition.
// JSON is detected by a leading '{'; anything else is read as YAML.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	raw := make(map[string]any)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse json: %w", domain.ErrInvalidDefinition, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse yaml: %w", domain.ErrInvalidDefinition, err)
		}
	}

	return p.ParseMap(raw)
}

// ParseMap validates a generic document against schema.Definition and decodes it.
// Decoding is weakly typed so that YAML integers in the alphabet become strings.
func (p *Parser) ParseMap(raw map[string]any) (*domain.Definition, error) {
	if err := schema.Validate(schema.Definition, raw, "name"); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}

	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("%w: definition missing name", domain.ErrInvalidDefinition)
	}
	return &def, nil
}

// IsDefinitionFile reports whether path has an extension the parser understands.
func IsDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
