package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/value"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <crate>",
		Short: "Explore a crate's entities interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cr, closer, err := c.openCrate(ctx, args[0], false)
			if err != nil {
				return err
			}
			defer closer.Close()

			m, err := newBrowseModel(args[0], cr)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	kindDescriptor = "descriptor"
	kindRoot       = "root"
)

// browseItem is one entity row with its rendered JSON-LD node.
type browseItem struct {
	id    string
	kind  string
	types string
	node  []string
}

// browseModel lists entities; enter opens the selected entity's node.
type browseModel struct {
	title  string
	items  []browseItem
	cursor int
	offset int
	height int

	open   bool
	scroll int
}

func newBrowseModel(title string, c *crate.Crate) (browseModel, error) {
	m := browseModel{title: title, height: 15}
	codec := value.Codec{Indent: "  "}

	add := func(kind string, n *value.Object, types []string) error {
		data, err := codec.Marshal(value.FromObject(n))
		if err != nil {
			return err
		}
		id, _ := n.GetString("@id")
		m.items = append(m.items, browseItem{
			id:    id,
			kind:  kind,
			types: strings.Join(types, ", "),
			node:  strings.Split(strings.TrimRight(string(data), "\n"), "\n"),
		})
		return nil
	}

	if err := add(kindDescriptor, c.Descriptor().Node(), c.Descriptor().Types()); err != nil {
		return m, err
	}
	if err := add(kindRoot, c.Root().Node(), c.Root().Types()); err != nil {
		return m, err
	}
	for _, row := range entityRows(crate.Summarize(c)) {
		e, _ := c.Entity(row[0])
		if err := add(row[1], e.Node(), e.Types()); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 6; h > 3 {
			m.height = h
		}
	case tea.KeyMsg:
		if m.open {
			return m.updateNode(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		if len(m.items) > 0 {
			m.open, m.scroll = true, 0
		}
	}
	return m, nil
}

func (m browseModel) updateNode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := len(m.items[m.cursor].node)
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.open = false
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < lines-m.height {
			m.scroll++
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder
	if m.open {
		it := m.items[m.cursor]
		b.WriteString(StyleTitle.Render(it.id))
		b.WriteString(" " + listDimStyle.Render(it.kind))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("arrows: scroll  esc: back  q: quit"))
		b.WriteString("\n\n")
		end := min(m.scroll+m.height, len(it.node))
		for _, line := range it.node[m.scroll:end] {
			b.WriteString(listNormalStyle.Render(line))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: show node  q: quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		it := m.items[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-40s %-11s %s", cursor, it.id, it.kind, listDimStyle.Render(it.types))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))
	return b.String()
}
