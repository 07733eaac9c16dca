package techstacks

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedFile []byte

type seedCatalog struct {
	TechStacks []struct {
		Name    string        `yaml:"name"`
		Type    TechStackType `yaml:"type"`
		IconURL string        `yaml:"iconUrl"`
	} `yaml:"techStacks"`
}

func loadSeed() ([]*TechStack, error) {
	var catalog seedCatalog
	if err := yaml.Unmarshal(seedFile, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse tech stack seed: %w", err)
	}

	techStacks := make([]*TechStack, 0, len(catalog.TechStacks))
	for _, entry := range catalog.TechStacks {
		if !entry.Type.IsValid() {
			return nil, fmt.Errorf("tech stack %q has invalid type %q", entry.Name, entry.Type)
		}

		techStacks = append(techStacks, &TechStack{
			Name:    entry.Name,
			Type:    entry.Type,
			IconURL: entry.IconURL,
		})
	}

	return techStacks, nil
}
