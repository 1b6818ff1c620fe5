// Package catalog holds the fixed, ordered list of service stages an order moves
// through. Stages are reference data: nothing in this package mutates them.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Person is the technician assigned to the order while a stage is active.
type Person struct {
	Name   string  `json:"name" yaml:"name"`
	Role   string  `json:"role" yaml:"role"`
	Avatar string  `json:"avatar" yaml:"avatar"` // opaque resource locator
	Rating float64 `json:"rating" yaml:"rating"`
}

// CompletionImages are the before/after photo references of a finished job.
type CompletionImages struct {
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// Stage is one step of the service timeline.
type Stage struct {
	ID                  int               `json:"id" yaml:"id"`
	Title               string            `json:"title" yaml:"title"`
	Subtitle            string            `json:"subtitle" yaml:"subtitle"`
	EstimatedTime       string            `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
	AssignedPerson      *Person           `json:"assigned_person,omitempty" yaml:"assigned_person,omitempty"`
	ChecklistItems      []string          `json:"checklist_items" yaml:"checklist_items"`
	CustomerExpectation string            `json:"customer_expectation" yaml:"customer_expectation"`
	CelebrationMessage  string            `json:"celebration_message,omitempty" yaml:"celebration_message,omitempty"`
	CompletionImages    *CompletionImages `json:"completion_images,omitempty" yaml:"completion_images,omitempty"`
}

// HasCelebration reports whether entering the stage should raise the banner.
func (s Stage) HasCelebration() bool { return s.CelebrationMessage != "" }

// Catalog is an immutable, id-ordered sequence of stages.
type Catalog struct {
	stages []Stage
}

// New validates stages and wraps them in a Catalog. Stage ids must run 1..N in
// slice order.
func New(stages []Stage) (Catalog, error) {
	if len(stages) == 0 {
		return Catalog{}, errors.New("catalog has no stages")
	}
	for i, s := range stages {
		if s.ID != i+1 {
			return Catalog{}, fmt.Errorf("stage at position %d has id %d, want %d", i+1, s.ID, i+1)
		}
		if strings.TrimSpace(s.Title) == "" {
			return Catalog{}, fmt.Errorf("stage %d has no title", s.ID)
		}
		if p := s.AssignedPerson; p != nil && (p.Rating < 0 || p.Rating > 5) {
			return Catalog{}, fmt.Errorf("stage %d: technician rating %.1f out of range [0,5]", s.ID, p.Rating)
		}
		if s.CompletionImages != nil && i != len(stages)-1 {
			return Catalog{}, fmt.Errorf("stage %d: completion images are only allowed on the last stage", s.ID)
		}
	}

	cp := make([]Stage, len(stages))
	copy(cp, stages)
	return Catalog{stages: cp}, nil
}

// Load reads a stage list from a YAML or JSON file, chosen by extension.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var doc struct {
		Stages []Stage `json:"stages" yaml:"stages"`
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Stages)
}

// Len returns the number of stages.
func (c Catalog) Len() int { return len(c.stages) }

// Stage returns the stage with the given id.
func (c Catalog) Stage(id int) (Stage, bool) {
	if id < 1 || id > len(c.stages) {
		return Stage{}, false
	}
	return c.stages[id-1], true
}

// Terminal returns the last stage.
func (c Catalog) Terminal() Stage {
	return c.stages[len(c.stages)-1]
}

// Stages returns a copy of all stages in order.
func (c Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Find returns the first stage matching pred.
func (c Catalog) Find(pred func(Stage) bool) (Stage, bool) {
	for _, s := range c.stages {
		if pred(s) {
			return s, true
		}
	}
	return Stage{}, false
}
