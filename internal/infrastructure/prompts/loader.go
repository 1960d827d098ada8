package prompts

import (
	_ "embed"
	"fmt"
	"os"

	"ecofin-advisor/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

//go:embed context.yaml
var DefaultContextPack []byte

//go:embed context.tmpl
var ContextTemplate string

// LoadContextPack reads the pack at path, or the embedded default when path is empty.
func LoadContextPack(path string) (*entity.ContextPack, error) {
	data := DefaultContextPack
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read context pack: %w", err)
		}
		data = b
	}
	return ParseContextPack(data)
}

func ParseContextPack(data []byte) (*entity.ContextPack, error) {
	var pack entity.ContextPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse context pack: %w", err)
	}
	if pack.Instructions == "" {
		return nil, fmt.Errorf("context pack %q has no instructions", pack.Name)
	}
	for i, f := range pack.Factors {
		if f.Category == "" || f.Unit == "" {
			return nil, fmt.Errorf("context pack %q: emission factor %d needs category and unit", pack.Name, i)
		}
		if f.KgCO2ePerUnit < 0 {
			return nil, fmt.Errorf("context pack %q: emission factor %q is negative", pack.Name, f.Category)
		}
	}
	return &pack, nil
}

// LoadContextBlock loads and renders the context block in one step.
func LoadContextBlock(path string) (string, error) {
	pack, err := LoadContextPack(path)
	if err != nil {
		return "", err
	}
	return RenderContext(ContextTemplate, pack)
}
