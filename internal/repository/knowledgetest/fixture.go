// Package knowledgetest seeds a small knowledge base in a temp directory.
package knowledgetest

import (
	"os"
	"path/filepath"
	"testing"

	"baristabox-be/internal/repository/implementation"
	"baristabox-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/require"
)

const Beans = `[
  {
    "id": "cb_001",
    "name": "Ethiopia Yirgacheffe",
    "origin": "Ethiopia",
    "type": "Arabica",
    "roast_level": 1,
    "processing": "Washed",
    "tasting_notes": "Jasmine, lemon zest and bergamot with a tea-like body.",
    "expert_tags": ["Floral", "Bright", "Fruity"]
  },
  {
    "id": "cb_002",
    "name": "Colombia Supremo",
    "origin": "Colombia",
    "type": "Arabica",
    "roast_level": 3,
    "processing": "Washed",
    "tasting_notes": "Caramel sweetness, red apple and a smooth nutty finish.",
    "expert_tags": ["Balanced", "Nutty", "Classic"]
  },
  {
    "id": "cb_003",
    "name": "Sumatra Mandheling",
    "origin": "Indonesia",
    "type": "Arabica",
    "roast_level": 5,
    "processing": "Wet-Hulled",
    "tasting_notes": "Dark chocolate, cedar and earthy spice with a heavy body.",
    "expert_tags": ["Earthy", "Bold", "Chocolatey"]
  }
]`

const Recipes = `[
  {
    "recipe_id": "br_001",
    "bean_id": "cb_001",
    "brew_method": "V60",
    "grind_size": "Medium-Fine",
    "coffee_grams": 15,
    "water_grams": 250,
    "water_temp_c": 94,
    "technique_notes": "Bloom with 45g for 40 seconds, then pour in slow spirals. Total time 2:45."
  },
  {
    "recipe_id": "br_002",
    "bean_id": "cb_001",
    "brew_method": "AeroPress",
    "grind_size": "Fine",
    "coffee_grams": 17,
    "water_grams": 220,
    "water_temp_c": 88,
    "technique_notes": "Inverted method, steep for 90 seconds and press gently."
  },
  {
    "recipe_id": "br_003",
    "bean_id": "cb_002",
    "brew_method": "French Press",
    "grind_size": "Coarse",
    "coffee_grams": 30,
    "water_grams": 500,
    "water_temp_c": 93,
    "technique_notes": "Steep for 4:00, break the crust, then plunge slowly."
  }
]`

const Troubleshooting = `{
  "bitter": {
    "description": "Coffee tastes harsh, bitter or astringent.",
    "causes": {
      "grind_fine": {
        "question": "Is your grind finer than table salt?",
        "solution": "Coarsen your grind a few steps to slow extraction down."
      },
      "water_temp_high": {
        "question": "Are you using water straight off the boil?",
        "solution": "Let the kettle rest for 30 seconds before pouring."
      },
      "brew_time_long": {
        "question": "Is your brew taking much longer than expected?",
        "solution": "Shorten the brew by pouring faster or grinding coarser."
      }
    }
  },
  "sour": {
    "description": "Coffee tastes sour, sharp or underdeveloped.",
    "causes": {
      "grind_coarse": {
        "question": "Does your grind look like coarse sea salt?",
        "solution": "Grind finer to increase extraction."
      },
      "water_temp_low": {
        "question": "Is your water cooler than it should be?",
        "solution": "Use water between 90 and 96°C."
      }
    }
  },
  "weak": {
    "description": "Coffee tastes thin or watery.",
    "causes": {
      "ratio_low": {
        "question": "Are you using less than 15 grams of coffee per 250ml?",
        "solution": "Increase the dose to around a 1:16 ratio."
      }
    }
  }
}`

const Training = `text,problem
my coffee is way too bitter,bitter
it tastes burnt and harsh,bitter
my brew is sour,sour
tastes like lemon juice in a bad way,sour
it is watery and thin,weak
`

// Files writes the fixture knowledge base into a fresh temp directory.
func Files(t *testing.T) implementation.KnowledgeFiles {
	t.Helper()
	dir := t.TempDir()
	files := implementation.KnowledgeFiles{
		BeansPath:           filepath.Join(dir, "coffee_beans.json"),
		RecipesPath:         filepath.Join(dir, "brew_recipes.json"),
		TroubleshootingPath: filepath.Join(dir, "troubleshooting_knowledge_base.json"),
		TrainingDataPath:    filepath.Join(dir, "doctor_problem_training_data.csv"),
	}
	for path, content := range map[string]string{
		files.BeansPath:           Beans,
		files.RecipesPath:         Recipes,
		files.TroubleshootingPath: Troubleshooting,
		files.TrainingDataPath:    Training,
	} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return files
}

// Open seeds the fixture and opens a store over it.
func Open(t *testing.T) (*implementation.KnowledgeStore, unitofwork.RepositoryFactory) {
	t.Helper()
	store, err := implementation.OpenKnowledgeStore(Files(t))
	require.NoError(t, err)
	return store, unitofwork.NewRepositoryFactory(store)
}
