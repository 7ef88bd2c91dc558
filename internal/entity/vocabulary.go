package entity

import "strings"

var (
	BeanTypes = []string{"Arabica", "Robusta", "Arabica/Robusta Blend"}

	ProcessingMethods = []string{"Washed", "Natural", "Honey", "Wet-Hulled"}

	ExpertTags = []string{
		"Fruity", "Floral", "Chocolatey", "Nutty", "Spicy", "Earthy",
		"Bright", "Balanced", "Bold", "Complex", "Classic", "Comforting",
		"Adventurous", "Morning Coffee", "Dessert Coffee",
	}

	BrewMethods = []string{"V60", "AeroPress", "French Press", "Chemex", "Kalita Wave"}

	GrindSizes = []string{
		"Extra Coarse", "Coarse", "Medium-Coarse", "Medium",
		"Medium-Fine", "Fine", "Extra Fine",
	}
)

const (
	BeanIdPrefix   = "cb_"
	RecipeIdPrefix = "br_"
)

// BrewMethodDisplayName maps a lower-cased brew method back to its canonical
// spelling. Unknown methods are returned unchanged.
func BrewMethodDisplayName(method string) string {
	for _, m := range BrewMethods {
		if strings.EqualFold(m, method) {
			return m
		}
	}
	return method
}
