package classify

import (
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

// Result is the role partition of a graph. Every input node appears in
// exactly one field.
type Result struct {
	Descriptor *value.Object
	Root       *value.Object
	// RootParts is the root's hasPart set, in document order.
	RootParts  []string
	Data       []*value.Object
	Contextual []*value.Object
}

// Options tunes classification.
type Options struct {
	// Prefix overrides the conformsTo prefix identifying the descriptor.
	// Empty means [metadata.SpecBaseURL].
	Prefix string
}

// Classify partitions nodes into descriptor, root, data and contextual
// nodes. The nodes are not modified or copied.
func Classify(nodes []*value.Object, opts Options) (*Result, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = metadata.SpecBaseURL
	}

	var (
		res   Result
		descs []string
		rest  = make([]*value.Object, 0, len(nodes))
		seen  = make(map[string]int, len(nodes))
	)
	for i, n := range nodes {
		id, ok := n.GetString(entity.KeyID)
		if !ok || id == "" {
			return nil, errors.New(errors.ErrCodeStructural, "@graph[%d] has no @id", i)
		}
		if prev, dup := seen[id]; dup {
			return nil, errors.Wrap(errors.ErrCodeStructural,
				errors.New(errors.ErrCodeDuplicateID, "%q", id),
				"@graph[%d] repeats the @id of @graph[%d]", i, prev)
		}
		seen[id] = i

		if entity.ConformsToPrefix(n, prefix) {
			descs = append(descs, id)
			res.Descriptor = n
			continue
		}
		rest = append(rest, n)
	}

	switch len(descs) {
	case 0:
		return nil, errors.New(errors.ErrCodeStructural, "no node conforms to %s*", prefix)
	case 1:
	default:
		return nil, errors.New(errors.ErrCodeStructural, "%d nodes conform to %s*: %v", len(descs), prefix, descs)
	}

	about, ok := res.Descriptor.Get(entity.KeyAbout)
	rootID, _ := value.RefID(about)
	if !ok || rootID == "" {
		return nil, errors.New(errors.ErrCodeStructural, "descriptor %q has no about reference", descs[0])
	}

	parts := make(map[string]bool)
	for _, n := range rest {
		id, _ := n.GetString(entity.KeyID)
		if id != rootID {
			continue
		}
		res.Root = n
		if hp, ok := n.Get(entity.KeyHasPart); ok {
			for _, p := range value.RefIDs(hp) {
				if !parts[p] {
					parts[p] = true
					res.RootParts = append(res.RootParts, p)
				}
			}
		}
		break
	}
	if res.Root == nil {
		return nil, errors.New(errors.ErrCodeStructural, "root %q named by descriptor about is not in @graph", rootID)
	}

	for _, n := range rest {
		if n == res.Root {
			continue
		}
		id, _ := n.GetString(entity.KeyID)
		if parts[id] {
			res.Data = append(res.Data, n)
		} else {
			res.Contextual = append(res.Contextual, n)
		}
	}
	return &res, nil
}
