package crate

import (
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/value"
)

// Summary is a flat description of a crate for listings.
type Summary struct {
	Root          string          `json:"root"`
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	DatePublished string          `json:"datePublished,omitempty"`
	License       string          `json:"license,omitempty"`
	ConformsTo    []string        `json:"conformsTo"`
	Data          []EntitySummary `json:"data"`
	Contextual    []EntitySummary `json:"contextual"`
	// Untracked names end in "/" for directories.
	Untracked []string `json:"untracked"`
}

// EntitySummary identifies one entity.
type EntitySummary struct {
	ID      string   `json:"id"`
	Types   []string `json:"types"`
	Dataset bool     `json:"dataset,omitempty"`
	// Local reports that the entity's content was found in the package.
	Local bool `json:"local,omitempty"`
}

// Summarize collects the summary of c.
func Summarize(c *Crate) Summary {
	props := c.root.Properties()
	s := Summary{
		Root:       c.root.ID(),
		ConformsTo: c.descriptor.ConformsTo(),
		Data:       []EntitySummary{},
		Contextual: []EntitySummary{},
		Untracked:  []string{},
	}
	s.Name, _ = props.GetString("name")
	s.Description, _ = props.GetString("description")
	s.DatePublished, _ = props.GetString("datePublished")
	if v, ok := props.Get("license"); ok {
		if id, ok := value.RefID(v); ok {
			s.License = id
		} else {
			s.License, _ = v.AsString()
		}
	}

	for _, e := range c.DataEntities() {
		_, dataset := e.(*entity.DataSetEntity)
		s.Data = append(s.Data, EntitySummary{
			ID:      e.ID(),
			Types:   e.Types(),
			Dataset: dataset,
			Local:   e.HasSource(),
		})
	}
	for _, e := range c.ContextualEntities() {
		s.Contextual = append(s.Contextual, EntitySummary{ID: e.ID(), Types: e.Types()})
	}
	for _, u := range c.untracked {
		name := u.Name
		if u.Dir {
			name += "/"
		}
		s.Untracked = append(s.Untracked, name)
	}
	return s
}
