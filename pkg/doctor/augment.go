package doctor

import (
	"fmt"
	"regexp"

	"baristabox-be/internal/entity"
)

// Augmentation names how a cause question is prefixed with the ideal
// recipe's parameters.
type Augmentation int

const (
	AugmentNone Augmentation = iota
	AugmentGrind
	AugmentBrewTime
	AugmentWaterTemp
)

var causeAugmentations = map[string]Augmentation{
	"grind_coarse":    AugmentGrind,
	"grind_fine":      AugmentGrind,
	"brew_time_short": AugmentBrewTime,
	"brew_time_long":  AugmentBrewTime,
	"water_temp_low":  AugmentWaterTemp,
	"water_temp_high": AugmentWaterTemp,
}

const defaultBrewTime = "the recommended time (e.g., 2:30 for V60)"

var brewTimePattern = regexp.MustCompile(`(\d+:\d+)`)

func AugmentationFor(causeKey string) Augmentation {
	return causeAugmentations[causeKey]
}

func (a Augmentation) String() string {
	switch a {
	case AugmentGrind:
		return "grind"
	case AugmentBrewTime:
		return "brew_time"
	case AugmentWaterTemp:
		return "water_temp"
	}
	return "none"
}

// Prefix is the sentence placed before the question. It is empty when there
// is no recipe to compare against.
func (a Augmentation) Prefix(recipe *entity.Recipe) string {
	if recipe == nil {
		return ""
	}
	switch a {
	case AugmentGrind:
		return fmt.Sprintf("The ideal recipe for this coffee uses a '%s' grind. ", recipe.GrindSize)
	case AugmentBrewTime:
		target := defaultBrewTime
		if m := brewTimePattern.FindStringSubmatch(recipe.TechniqueNotes); m != nil {
			target = m[1]
		}
		return fmt.Sprintf("The target brew time for this recipe is around %s. ", target)
	case AugmentWaterTemp:
		return fmt.Sprintf("This recipe calls for water at %d°C. ", recipe.WaterTempC)
	}
	return ""
}

// AugmentQuestion returns the question as it should be asked for causeKey.
func AugmentQuestion(causeKey, question string, recipe *entity.Recipe) string {
	return AugmentationFor(causeKey).Prefix(recipe) + question
}
