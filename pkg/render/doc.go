// Package render draws the entity graph of a crate.
//
// # Overview
//
// [ToDOT] converts a crate into Graphviz DOT source and [RenderSVG] lays it
// out with Graphviz:
//
//	dot := render.ToDOT(c, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [Diagram] wraps both steps behind a [cache.Cache]. The key is the hash of
// the serialized metadata document plus the options, so any edit to the
// crate produces a new key.
//
// # Diagram
//
// Nodes are shaped by role:
//
//   - descriptor: grey note
//   - root: bold folder
//   - datasets: folders
//   - other data entities: boxes
//   - contextual entities: ellipses
//
// Solid edges follow hasPart, the dashed edge is the descriptor's about,
// and dotted edges are other {"@id": ...} references between entities of
// the crate, labeled with the property name. References to identifiers
// outside the crate are not drawn.
//
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/rocrate/pkg/cache#Cache
package render
