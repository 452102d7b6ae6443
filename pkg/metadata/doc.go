// Package metadata reads and writes the crate metadata document.
//
// # Document Shape
//
// A metadata document is a JSON-LD object with two members:
//
//	{
//	  "@context": "https://w3id.org/ro/crate/1.1/context",
//	  "@graph": [
//	    {"@id": "ro-crate-metadata.json", "@type": "CreativeWork", ...},
//	    {"@id": "./", "@type": "Dataset", "hasPart": [{"@id": "file1.txt"}]},
//	    {"@id": "file1.txt", "@type": "File"}
//	  ]
//	}
//
// The @context value is carried opaquely: it is never resolved or
// interpreted, only written back as read. @graph must be an array of
// objects. Anything else is a structural error.
//
// # Reserved Names
//
// [FileName], [PreviewFile] and [PreviewDir] are the conventional entries a
// package may carry next to its content. They are never reported as
// untracked.
//
// # Reading and Writing
//
// Use [ReadDocument] or [ImportDocument] to decode, and [WriteDocument] or
// [ExportDocument] to encode. The [value.Codec] is passed explicitly.
package metadata
