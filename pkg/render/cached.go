package render

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/rocrate/pkg/cache"
	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/observability"
	"github.com/matzehuels/rocrate/pkg/value"
)

// Output formats accepted by [Diagram].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

const keyType = "render"

// Diagram renders c in format, consulting store first. Entries are keyed
// by the BLAKE3 hash of the crate's metadata document and opts, so any
// edit to the metadata produces a fresh render. The boolean reports a
// cache hit. Cache failures never fail the render.
func Diagram(ctx context.Context, store cache.Cache, keyer cache.Keyer, c *crate.Crate, format string, opts Options, ttl time.Duration) ([]byte, bool, error) {
	if format != FormatDOT && format != FormatSVG {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "unknown diagram format %q", format)
	}
	doc, err := value.Codec{}.Marshal(c.Document().Value())
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "encode metadata")
	}
	key := keyer.RenderKey(cache.Hash(doc), cache.RenderKeyOpts{
		Format:     format,
		Detailed:   opts.Detailed,
		References: opts.References,
	})

	hooks := observability.Cache()
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, keyType)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, keyType)

	out := []byte(ToDOT(c, opts))
	if format == FormatSVG {
		if out, err = RenderSVG(ctx, string(out)); err != nil {
			return nil, false, fmt.Errorf("render svg: %w", err)
		}
	}
	if err := store.Set(ctx, key, out, ttl); err == nil {
		hooks.OnCacheSet(ctx, keyType, len(out))
	}
	return out, false, nil
}
