package entity

type Recipe struct {
	Id             string
	BeanId         string
	BrewMethod     string
	GrindSize      string
	CoffeeGrams    float64
	WaterGrams     int
	WaterTempC     int
	TechniqueNotes string
}
