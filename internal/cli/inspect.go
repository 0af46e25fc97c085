package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

// newInspectCmd creates the inspect command: an interactive hierarchy
// browser with per-component detail.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <page.json>",
		Short: "Browse the component hierarchy interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(args[0])
			if err != nil {
				return err
			}
			mgr := hierarchy.NewManager(nil)
			tree, err := mgr.Build(page.comp, page.doc.RootID)
			if err != nil {
				return err
			}

			model := newTreeModel(tree, page.comp)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// treeRow is one visible line of the inspector.
type treeRow struct {
	id    string
	depth int
}

// treeModel is the bubbletea model for hierarchy browsing.
type treeModel struct {
	rows   []treeRow
	comp   component.Map
	tree   *hierarchy.Tree
	cursor int
	height int
	offset int
}

func newTreeModel(tree *hierarchy.Tree, comp component.Map) treeModel {
	var rows []treeRow
	tree.Walk(func(n *hierarchy.Node) {
		rows = append(rows, treeRow{id: n.ComponentID, depth: n.Depth})
	})
	return treeModel{rows: rows, comp: comp, tree: tree, height: 15}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Component hierarchy"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		rec := m.comp[row.id]
		line := strings.Repeat("  ", row.depth) + string(rec.Type) + " " + row.id
		if i == m.cursor {
			b.WriteString(styleTitle.Render("> " + line))
		} else {
			b.WriteString("  " + styleValue.Render(line))
		}
		b.WriteString("\n")
	}

	if m.cursor < len(m.rows) {
		sel := m.rows[m.cursor]
		rec := m.comp[sel.id]
		node, _ := m.tree.Node(sel.id)
		b.WriteString("\n")
		b.WriteString(styleDim.Render(fmt.Sprintf("path: %s  depth: %d  order: %d  props: %d  styles: %d",
			node.Path, node.Depth, rec.Order, len(rec.Props), len(rec.Style))))
		b.WriteString("\n")
	}
	return b.String()
}
