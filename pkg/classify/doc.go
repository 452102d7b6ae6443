// Package classify partitions the raw @graph of a metadata document by role.
//
// # Algorithm
//
// [Classify] makes one pass over the nodes and sorts them into the
// descriptor and everything else. The descriptor is the node whose
// conformsTo (a single reference or an array of them) names an identifier
// under the format's base URL. Its about reference gives the root
// identifier, which is then looked up among the remaining nodes. The root's
// hasPart set decides the rest:
//
//   - nodes listed in the root's hasPart are data entities
//   - all other nodes are contextual entities
//
// No node is ever placed in two groups.
//
// # Errors
//
// Every failure is a STRUCTURAL error from pkg/errors:
//
//   - a node without a non-empty string @id
//   - two nodes sharing an @id
//   - no descriptor, or more than one
//   - a descriptor without about, or an about that names no node
//
// hasPart entries that resolve to nothing are not checked here; see
// pkg/validation.
package classify
