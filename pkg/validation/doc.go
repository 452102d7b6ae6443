// Package validation checks assembled crates for graph consistency.
//
// A [Validator] inspects a [crate.Crate] after the reader has built it, or
// before the writer persists it. [Default] bundles the built-in rules:
//
//   - every hasPart entry resolves to an entity of the crate (REFERENTIAL)
//   - every data entity is listed in the root's hasPart, nested files
//     included (REFERENTIAL)
//   - the descriptor's about names the root (REFERENTIAL)
//   - the descriptor conforms to a versioned format identifier
//   - the root is typed Dataset
//
// Failures are reported as one VALIDATION error wrapping every problem
// found. Use [Problems] to list them individually:
//
//	if err := validation.Default().Validate(c); err != nil {
//	    for _, p := range validation.Problems(err) {
//	        fmt.Println(p)
//	    }
//	}
package validation
