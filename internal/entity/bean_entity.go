package entity

type Bean struct {
	Id           string
	Name         string
	Origin       string
	Type         string
	RoastLevel   int
	Processing   string
	TastingNotes string
	ExpertTags   []string
}
