// Package catalog holds the process-wide definition of verification steps and
// document questions. A Catalog is built once at startup and never mutated.
package catalog

import (
	"fmt"
	"slices"

	"vkyc/internal/verification/models"
)

// StepDefinition describes one verification step.
type StepDefinition struct {
	ID          models.StepID `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
}

// Question is one yes/no prompt in the document checklist.
type Question struct {
	ID   models.QuestionID `json:"id" yaml:"id"`
	Text string            `json:"text" yaml:"text"`
}

// QuestionCategory groups questions by document.
type QuestionCategory struct {
	Name      string     `json:"name" yaml:"name"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Catalog is an immutable, versioned list of steps and question categories.
type Catalog struct {
	version    string
	steps      []StepDefinition
	categories []QuestionCategory
	stepIndex  map[models.StepID]int
	questions  map[models.QuestionID]struct{}
}

// New validates the definitions and builds a Catalog.
//
// Rules: version non-empty, at least one step, step and question IDs
// non-empty and unique, titles non-empty.
func New(version string, steps []StepDefinition, categories []QuestionCategory) (*Catalog, error) {
	if version == "" {
		return nil, fmt.Errorf("catalog version is required")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("catalog must define at least one step")
	}

	c := &Catalog{
		version:    version,
		steps:      slices.Clone(steps),
		categories: make([]QuestionCategory, len(categories)),
		stepIndex:  make(map[models.StepID]int, len(steps)),
		questions:  make(map[models.QuestionID]struct{}),
	}
	for i, st := range steps {
		if st.ID == "" {
			return nil, fmt.Errorf("step %d: id is required", i)
		}
		if st.Title == "" {
			return nil, fmt.Errorf("step %q: title is required", st.ID)
		}
		if _, dup := c.stepIndex[st.ID]; dup {
			return nil, fmt.Errorf("duplicate step id %q", st.ID)
		}
		c.stepIndex[st.ID] = i
	}
	for i, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("question category %d: name is required", i)
		}
		for _, q := range cat.Questions {
			if q.ID == "" || q.Text == "" {
				return nil, fmt.Errorf("question category %q: question id and text are required", cat.Name)
			}
			if _, dup := c.questions[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q", q.ID)
			}
			c.questions[q.ID] = struct{}{}
		}
		c.categories[i] = QuestionCategory{Name: cat.Name, Questions: slices.Clone(cat.Questions)}
	}
	return c, nil
}

// Version identifies this catalog revision.
func (c *Catalog) Version() string { return c.version }

// Size is the number of steps; every session has exactly this many.
func (c *Catalog) Size() int { return len(c.steps) }

// Steps returns the step definitions in catalog order.
func (c *Catalog) Steps() []StepDefinition { return slices.Clone(c.steps) }

// Step looks up a step definition by id.
func (c *Catalog) Step(id models.StepID) (StepDefinition, bool) {
	i, ok := c.stepIndex[id]
	if !ok {
		return StepDefinition{}, false
	}
	return c.steps[i], true
}

// HasStep reports whether id is a catalog step.
func (c *Catalog) HasStep(id models.StepID) bool {
	_, ok := c.stepIndex[id]
	return ok
}

// StepIDs returns step ids in catalog order.
func (c *Catalog) StepIDs() []models.StepID {
	ids := make([]models.StepID, len(c.steps))
	for i, st := range c.steps {
		ids[i] = st.ID
	}
	return ids
}

// QuestionCategories returns the document question groups.
func (c *Catalog) QuestionCategories() []QuestionCategory {
	out := make([]QuestionCategory, len(c.categories))
	for i, cat := range c.categories {
		out[i] = QuestionCategory{Name: cat.Name, Questions: slices.Clone(cat.Questions)}
	}
	return out
}

// HasQuestion reports whether id is a catalog question.
func (c *Catalog) HasQuestion(id models.QuestionID) bool {
	_, ok := c.questions[id]
	return ok
}

// QuestionCount is the total number of document questions.
func (c *Catalog) QuestionCount() int { return len(c.questions) }

// QuestionIDs returns question ids in catalog order.
func (c *Catalog) QuestionIDs() []models.QuestionID {
	ids := make([]models.QuestionID, 0, len(c.questions))
	for _, cat := range c.categories {
		for _, q := range cat.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
