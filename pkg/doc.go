// Package pkg provides the libraries behind the rocrate tool.
//
// # Overview
//
// An RO-Crate is a directory or zip archive described by a JSON-LD
// document, ro-crate-metadata.json, whose @graph lists a metadata
// descriptor, a root dataset, data entities (files and directories that
// are part of the crate) and contextual entities (people, licenses,
// places and anything else the data refers to). The pkg directory is
// organized into four areas:
//
//  1. Model - [value], [entity] and [crate] hold the graph in memory
//  2. Persistence - [metadata], [reader] and [writer] move it to and from disk
//  3. Checks - [classify] and [validation]
//  4. Tooling - [render], [cache], [config], [observability] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	folder or .zip
//	     ↓
//	[reader] (locate metadata, classify entities, list untracked files)
//	     ↓
//	[crate.Crate] (descriptor + root + data + contextual)
//	     ↓
//	[validation] (hasPart, root membership, descriptor rules)
//	     ↓
//	[writer] (folder or zip, content copied from each entity's source)
//
// # Quick Start
//
// Read a crate, describe a new file and save it as an archive:
//
//	c, closer, err := reader.Open(ctx, "./my-crate")
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	e, _ := entity.NewDataEntityBuilder().
//	    SetID("results.csv").
//	    SetSource("/tmp/results.csv").
//	    Build()
//	_ = c.AddDataEntity(e, true)
//
//	w := writer.New(writer.NewZipStrategy(), writer.WithValidator(validation.Default()))
//	err = w.Write(ctx, c, "my-crate.zip")
//
// # Errors
//
// Every package reports failures as [errors.Error] values carrying a code
// (STRUCTURAL, DUPLICATE_ID, REFERENTIAL, VALIDATION, IO, ...). Use
// [errors.Is] to test for a code anywhere in the chain.
//
// [value]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/value
// [entity]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/entity
// [crate]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/crate
// [metadata]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/metadata
// [reader]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/reader
// [writer]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/writer
// [classify]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/classify
// [validation]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/validation
// [render]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/buildinfo
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/errors#Error
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/errors#Is
package pkg
