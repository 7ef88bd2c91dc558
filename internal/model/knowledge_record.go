package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Records below mirror the on-disk knowledge files field for field.

type BeanRecord struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Origin       string   `json:"origin"`
	Type         string   `json:"type"`
	RoastLevel   int      `json:"roast_level"`
	Processing   string   `json:"processing"`
	TastingNotes string   `json:"tasting_notes"`
	ExpertTags   []string `json:"expert_tags"`
}

type RecipeRecord struct {
	RecipeId       string  `json:"recipe_id"`
	BeanId         string  `json:"bean_id"`
	BrewMethod     string  `json:"brew_method"`
	GrindSize      string  `json:"grind_size"`
	CoffeeGrams    float64 `json:"coffee_grams"`
	WaterGrams     int     `json:"water_grams"`
	WaterTempC     int     `json:"water_temp_c"`
	TechniqueNotes string  `json:"technique_notes"`
}

type CauseRecord struct {
	Question string `json:"question"`
	Solution string `json:"solution"`
}

type ProblemRecord struct {
	Description string                                       `json:"description"`
	Causes      *orderedmap.OrderedMap[string, CauseRecord] `json:"causes"`
}

// TroubleshootingKnowledgeBase is the whole troubleshooting file: problem key
// to problem, in file order.
type TroubleshootingKnowledgeBase = orderedmap.OrderedMap[string, ProblemRecord]

func NewTroubleshootingKnowledgeBase() *TroubleshootingKnowledgeBase {
	return orderedmap.New[string, ProblemRecord]()
}

func NewCauseMap() *orderedmap.OrderedMap[string, CauseRecord] {
	return orderedmap.New[string, CauseRecord]()
}

// TrainingHeader is the first record of the training data CSV.
var TrainingHeader = []string{"text", "problem"}
