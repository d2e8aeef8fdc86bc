package models

// Progress aggregates step statuses. Always computed, never stored.
type Progress struct {
	Completed int `json:"completed"`
	Passed    int `json:"passed"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
	Total     int `json:"total"`
}

// QuestionProgress counts ticked document questions.
type QuestionProgress struct {
	Checked int `json:"checked"`
	Total   int `json:"total"`
}
