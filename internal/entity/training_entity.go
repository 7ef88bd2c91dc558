package entity

// TrainingExample is one labelled phrase used by the problem classifier.
type TrainingExample struct {
	Text    string
	Problem string
}
