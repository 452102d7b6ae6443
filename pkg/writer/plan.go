package writer

import (
	"net/url"
	"os"
	"strings"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
)

// item is one piece of content to persist.
type item struct {
	// name is the slash-separated destination path inside the package.
	name   string
	source string
	dir    bool
}

// plan lists the content a crate carries. Data entities come first in crate
// order, then untracked entries when includeUntracked is set.
func plan(c *crate.Crate, includeUntracked bool) ([]item, error) {
	var items []item
	for _, e := range c.DataEntities() {
		if !e.HasSource() {
			continue
		}
		name, err := contentPath(e.ID())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "data entity %q", e.ID())
		}
		info, err := os.Stat(e.Source())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "source of %q", e.ID())
		}
		items = append(items, item{name: name, source: e.Source(), dir: info.IsDir()})
	}
	if includeUntracked {
		for _, u := range c.Untracked() {
			items = append(items, item{name: u.Name, source: u.Path, dir: u.Dir})
		}
	}
	return items, nil
}

// contentPath maps an identifier to its path inside the package.
func contentPath(id string) (string, error) {
	name := id
	if dec, err := url.PathUnescape(id); err == nil {
		name = dec
	}
	if err := errors.ValidatePath(name); err != nil {
		return "", err
	}
	name = strings.TrimPrefix(strings.TrimSuffix(name, "/"), "./")
	if name == "" || name == "." {
		return "", errors.New(errors.ErrCodeInvalidPath, "%q names the package root", id)
	}
	return name, nil
}
