package classifier

import (
	"fmt"
	"os"
	"sort"

	"baristabox-be/internal/entity"

	"gopkg.in/yaml.v3"
)

type intentFile struct {
	Intents map[string][]string `yaml:"intents"`
}

// LoadIntentExamples reads a YAML file of the form
//
//	intents:
//	  recipe:
//	    - how do I brew ...
//
// Labels come back sorted so training order does not depend on map order.
func LoadIntentExamples(path string) ([]Example, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f intentFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	labels := make([]string, 0, len(f.Intents))
	for label := range f.Intents {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var examples []Example
	for _, label := range labels {
		for _, text := range f.Intents[label] {
			examples = append(examples, Example{Text: text, Label: label})
		}
	}
	return examples, nil
}

func FromTraining(training []entity.TrainingExample) []Example {
	examples := make([]Example, len(training))
	for i, t := range training {
		examples[i] = Example{Text: t.Text, Label: t.Problem}
	}
	return examples
}
