package categories

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedFile []byte

func loadSeed() ([]*Category, error) {
	var catalog struct {
		Categories []string `yaml:"categories"`
	}
	if err := yaml.Unmarshal(seedFile, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse category seed: %w", err)
	}

	categories := make([]*Category, 0, len(catalog.Categories))
	for _, name := range catalog.Categories {
		categories = append(categories, &Category{Name: strings.TrimSpace(name)})
	}

	return categories, nil
}
