package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/value"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the type set to each node label.
	Detailed bool
	// References draws edges for {"@id": ...} properties other than
	// hasPart and about.
	References bool
}

// ToDOT converts a crate to Graphviz DOT source.
func ToDOT(c *crate.Crate, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph crate {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	desc := c.Descriptor()
	writeNode(&buf, desc, opts, "shape=note", "fillcolor=lightgrey")
	writeNode(&buf, c.Root(), opts, "shape=folder", "penwidth=2")
	for _, e := range c.DataEntities() {
		if _, ok := e.(*entity.DataSetEntity); ok {
			writeNode(&buf, e, opts, "shape=folder")
		} else {
			writeNode(&buf, e, opts, "shape=box")
		}
	}
	for _, e := range c.ContextualEntities() {
		writeNode(&buf, e, opts, "shape=ellipse", "fillcolor=lightblue")
	}

	buf.WriteString("\n")
	if about := desc.About(); about != "" && c.Has(about) {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=\"about\"];\n", desc.ID(), about)
	}
	writeHasPart(&buf, c, c.Root().HasPart(), c.Root().ID())
	for _, e := range c.DataEntities() {
		if ds, ok := e.(*entity.DataSetEntity); ok {
			writeHasPart(&buf, c, ds.HasPart(), ds.ID())
		}
	}
	if opts.References {
		for _, id := range c.IDs() {
			e, _ := c.Entity(id)
			writeReferences(&buf, c, e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, e entity.Entity, opts Options, attrs ...string) {
	label := e.ID()
	if opts.Detailed {
		label += "\n" + strings.Join(e.Types(), ", ")
	}
	attrs = append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
	fmt.Fprintf(buf, "  %q [%s];\n", e.ID(), strings.Join(attrs, ", "))
}

func writeHasPart(buf *bytes.Buffer, c *crate.Crate, parts []string, from string) {
	for _, p := range parts {
		if c.Has(p) {
			fmt.Fprintf(buf, "  %q -> %q;\n", from, p)
		}
	}
}

func writeReferences(buf *bytes.Buffer, c *crate.Crate, e entity.Entity) {
	for key, v := range e.Properties().All() {
		if key == entity.KeyHasPart || key == entity.KeyAbout || key == entity.KeyConformsTo {
			continue
		}
		for _, target := range value.RefIDs(v) {
			if c.Has(target) {
				fmt.Fprintf(buf, "  %q -> %q [style=dotted, label=%q];\n", e.ID(), target, key)
			}
		}
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a zero
// origin with explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
