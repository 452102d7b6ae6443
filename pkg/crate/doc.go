// Package crate holds the assembled entity graph of a research-object
// package.
//
// # Overview
//
// A [Crate] has exactly one descriptor and one root dataset, plus any number
// of data and contextual entities keyed by identifier. Identifiers are unique
// across all four groups:
//
//	c := crate.New()
//	file, _ := entity.NewDataEntityBuilder().SetID("data.csv").Build()
//	if err := c.AddDataEntity(file, true); err != nil {
//	    return err
//	}
//
// Passing toRoot=true lists the entity in the root's hasPart.
//
// # Removal
//
// [Crate.DeleteEntity] removes an entity and every {"@id": id} reference to
// it held by the rest of the graph, hasPart included. The root and the
// descriptor cannot be removed.
//
// # Untracked Files
//
// The reader records package entries that no data entity uses. They are
// kept sorted by name and exposed through [Crate.Untracked].
//
// A Crate is not safe for concurrent use.
package crate
