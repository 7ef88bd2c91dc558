package dto

import "time"

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Beans

type BeanRequest struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Origin       string   `json:"origin" validate:"required,max=120"`
	Type         string   `json:"type" validate:"required,oneof=Arabica Robusta 'Arabica/Robusta Blend'"`
	RoastLevel   int      `json:"roast_level" validate:"required,min=1,max=5"`
	Processing   string   `json:"processing" validate:"required,oneof=Washed Natural Honey Wet-Hulled"`
	TastingNotes string   `json:"tasting_notes" validate:"required,max=500"`
	ExpertTags   []string `json:"expert_tags" validate:"required,min=1,dive,oneof=Fruity Floral Chocolatey Nutty Spicy Earthy Bright Balanced Bold Complex Classic Comforting Adventurous 'Morning Coffee' 'Dessert Coffee'"`
}

type BeanResponse struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Origin       string   `json:"origin"`
	Type         string   `json:"type"`
	RoastLevel   int      `json:"roast_level"`
	Processing   string   `json:"processing"`
	TastingNotes string   `json:"tasting_notes"`
	ExpertTags   []string `json:"expert_tags"`
}

type DeleteBeanResponse struct {
	Id             string `json:"id"`
	RecipesRemoved int    `json:"recipes_removed"`
}

// Recipes

type RecipeRequest struct {
	BeanId         string  `json:"bean_id" validate:"required"`
	BrewMethod     string  `json:"brew_method" validate:"required,oneofci=V60 AeroPress 'French Press' Chemex 'Kalita Wave'"`
	GrindSize      string  `json:"grind_size" validate:"required,oneof='Extra Coarse' Coarse Medium-Coarse Medium Medium-Fine Fine 'Extra Fine'"`
	CoffeeGrams    float64 `json:"coffee_grams" validate:"required,gt=0"`
	WaterGrams     int     `json:"water_grams" validate:"required,gt=0"`
	WaterTempC     int     `json:"water_temp_c" validate:"required,min=80,max=100"`
	TechniqueNotes string  `json:"technique_notes" validate:"max=2000"`
}

type RecipeResponse struct {
	RecipeId       string  `json:"recipe_id"`
	BeanId         string  `json:"bean_id"`
	BeanName       string  `json:"bean_name,omitempty"`
	BrewMethod     string  `json:"brew_method"`
	GrindSize      string  `json:"grind_size"`
	CoffeeGrams    float64 `json:"coffee_grams"`
	WaterGrams     int     `json:"water_grams"`
	WaterTempC     int     `json:"water_temp_c"`
	TechniqueNotes string  `json:"technique_notes"`
}

// Troubleshooting

type CauseResponse struct {
	Key      string `json:"key"`
	Question string `json:"question"`
	Solution string `json:"solution"`
}

type ProblemResponse struct {
	Key             string           `json:"key"`
	Description     string           `json:"description"`
	Causes          []*CauseResponse `json:"causes"`
	TrainingPhrases int              `json:"training_phrases"`
}

type CreateProblemRequest struct {
	Key         string `json:"key" validate:"required,max=64"`
	Description string `json:"description" validate:"required,max=500"`
}

type UpdateProblemRequest struct {
	Description string `json:"description" validate:"required,max=500"`
}

// AddCauseRequest creates the problem first when ProblemDescription is set
// and the problem does not exist yet.
type AddCauseRequest struct {
	Key                string `json:"key" validate:"required,max=64"`
	Question           string `json:"question" validate:"required,max=500"`
	Solution           string `json:"solution" validate:"required,max=2000"`
	ProblemDescription string `json:"problem_description" validate:"max=500"`
}

type UpdateCauseRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Solution string `json:"solution" validate:"required,max=2000"`
}

type DeleteProblemResponse struct {
	Key            string `json:"key"`
	PhrasesRemoved int    `json:"phrases_removed"`
}

// Training data

type TrainingExampleDto struct {
	Text    string `json:"text" validate:"required"`
	Problem string `json:"problem" validate:"required"`
}

// AddTrainingRequest carries one phrase per line.
type AddTrainingRequest struct {
	Problem string `json:"problem" validate:"required"`
	Phrases string `json:"phrases" validate:"required"`
}

type DeleteTrainingRequest struct {
	Examples []TrainingExampleDto `json:"examples" validate:"required,min=1,dive"`
}

type TrainingChangeResponse struct {
	Changed int `json:"changed"`
	Total   int `json:"total"`
}

// Operations

type LogListResponse struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module,omitempty"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type SnapshotResponse struct {
	Bucket    string    `json:"bucket"`
	Keys      []string  `json:"keys"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcripts

type TranscriptMessage struct {
	Role      string                 `json:"role"`
	Chat      string                 `json:"chat"`
	Flow      string                 `json:"flow,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type TranscriptResponse struct {
	ChatSessionId string               `json:"chat_session_id"`
	Mode          string               `json:"mode"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at,omitempty"`
	Messages      []*TranscriptMessage `json:"messages"`
}
