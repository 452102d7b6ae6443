// Package value provides the generic JSON value tree used to carry crate
// metadata before and after entity classification.
//
// # Overview
//
// A metadata document is an untyped tree of JSON-LD nodes. This package keeps
// that tree intact, including the member order of every object, so a crate can
// be read and written back without reshuffling property bags:
//
//	codec := value.Codec{Indent: "  "}
//	doc, err := codec.Decode(r)
//	if err != nil {
//	    return err
//	}
//	obj, ok := doc.AsObject()
//
// # Types
//
//   - [Value]: tagged union of null, bool, number, string, array and object
//   - [Object]: insertion-ordered string-keyed map of values
//   - [Codec]: encoding options, passed explicitly to whoever needs them
//
// Numbers are held as [encoding/json.Number] so integer and decimal literals
// survive a round trip unchanged.
//
// # References
//
// JSON-LD cross references are single-key objects of the form {"@id": "x"}.
// Use [Ref] to build one and [RefID] to read one back.
//
// # Concurrency
//
// Values and objects are not safe for concurrent mutation.
package value
