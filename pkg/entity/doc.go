// Package entity defines the typed nodes of a crate's metadata graph.
//
// # Variants
//
// Every node has an identifier, a non-empty type set and an ordered property
// bag. The structural members @id and @type never live in the bag:
//
//   - [DataEntity]: a file (or other content) inside the package, with an
//     optional source path holding its bytes
//   - [DataSetEntity]: a directory-shaped data entity with a hasPart set
//   - [RootDataEntity]: the dataset describing the package itself ("./")
//   - [ContextualEntity]: metadata-only nodes such as people or licenses
//   - [DescriptorEntity]: the metadata file's own node (conformsTo, about)
//
// # Builders
//
// Each variant has its own builder. Builders seed the variant's canonical
// type and accept a raw node wholesale through SetAll:
//
//	ds, err := entity.NewDataSetBuilder().
//	    SetID("data/").
//	    AddToHasPart("data/a.csv").
//	    AddProperty("name", value.String("Raw data")).
//	    Build()
//
// An entity built without an identifier receives a generated local one of
// the form "#<uuid>".
//
// # hasPart
//
// Datasets keep hasPart inside the property bag, always as an array of
// {"@id": ...} objects. Readers may still meet the single-object form in
// documents written elsewhere; [DataSetEntity.HasInHasPart] and
// [DataSetEntity.HasPart] accept both.
//
// Entities are not safe for concurrent mutation.
package entity
