// Package writer persists crates as folders or zip archives.
//
// # Overview
//
// The writer is the structural inverse of pkg/reader. It emits the metadata
// document (descriptor, root with hasPart in array form, then every data
// and contextual entity) and copies the content of each data entity that
// has a source to the path named by its identifier:
//
//	w := writer.New(writer.NewFolderStrategy())
//	if err := w.Write(ctx, c, "out/crate"); err != nil {
//	    return err
//	}
//
// Reading the output back yields the same identifiers, types, property bags
// and root/descriptor designation.
//
// # Strategies
//
//   - [FolderStrategy]: writes into a directory; the metadata file is
//     replaced atomically
//   - [ZipStrategy]: writes a zip archive with a configurable deflate level;
//     the archive only appears at its destination once complete
//
// # Path Safety
//
// A data entity with a source must have an identifier that is a safe
// relative path. Anything else fails with an IO error wrapping
// INVALID_PATH before a single byte is written.
package writer
