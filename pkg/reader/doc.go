// Package reader assembles a crate from a package on disk.
//
// # Overview
//
// A [Reader] pulls the metadata document from a [MetadataSource] and the
// content root from a [ContentSource], classifies the @graph nodes (see
// pkg/classify), attaches content paths to data entities, records untracked
// entries and finally runs a validator:
//
//	r := reader.New(reader.NewFolderStrategy())
//	c, err := r.Read(ctx, "path/to/crate")
//	if err != nil {
//	    return err
//	}
//
// # Strategies
//
//   - [FolderStrategy]: the package is a directory holding
//     ro-crate-metadata.json and its content
//   - [ZipStrategy]: the package is a zip archive; it is extracted to a
//     temporary directory which lives until [ZipStrategy.Close]
//
// [Open] picks the strategy from the location and returns a closer that
// releases whatever the strategy holds.
//
// # Content Resolution
//
// A data entity gets a source when its identifier is a safe relative path
// (no URI scheme, not absolute, no "..") that exists under the content root.
// A miss is not an error: the entity is simply built without a source.
//
// # Untracked Entries
//
// Entries directly under the content root that no data entity uses are
// recorded as untracked, except ro-crate-metadata.json,
// ro-crate-preview.html and ro-crate-preview_files, and anything matching
// an ignore glob (doublestar syntax).
package reader
