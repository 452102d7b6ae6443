package value

// KeyID is the JSON-LD identifier member.
const KeyID = "@id"

// Ref builds a reference object {"@id": id}.
func Ref(id string) *Value {
	return FromObject(NewObject().SetString(KeyID, id))
}

// RefID returns the identifier of a reference object. It reports false when
// v is not an object or has no string "@id" member.
func RefID(v *Value) (string, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return "", false
	}
	return obj.GetString(KeyID)
}

// RefIDs collects identifiers from a value that is either a single reference
// object or an array of them. Elements without an identifier are skipped.
func RefIDs(v *Value) []string {
	if id, ok := RefID(v); ok {
		return []string{id}
	}
	arr, ok := v.AsArray()
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(arr))
	for _, e := range arr {
		if id, ok := RefID(e); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// StringsOf returns the strings held by v when v is a string or an array of
// strings. Non-string array elements are skipped.
func StringsOf(v *Value) []string {
	if s, ok := v.AsString(); ok {
		return []string{s}
	}
	arr, ok := v.AsArray()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}
