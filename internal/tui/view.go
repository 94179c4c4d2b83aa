package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"workbench/internal/domain"
	"workbench/internal/notify"
	"workbench/internal/panel"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Underline(true)
	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

var tabLabels = map[panel.Tab]string{
	panel.TabDocuments: "Documents",
	panel.TabChats:     "Chats",
	panel.TabTables:    "Database",
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")

	if m.mode != inputNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabBar() string {
	labels := lo.Map(panel.Tabs(), func(tab panel.Tab, _ int) string {
		label := tabLabels[tab]
		if tab == m.snapshot.ActiveTab {
			return activeTabStyle.Render(label)
		}
		return tabStyle.Render(label)
	})
	bar := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	if m.snapshot.Uploading {
		bar += dimStyle.Render("  " + m.spinner.View() + " uploading")
	}
	return bar
}

func (m Model) renderBody() string {
	switch m.snapshot.ActiveTab {
	case panel.TabChats:
		return m.renderChats()
	case panel.TabTables:
		return m.renderTables()
	default:
		return m.renderDocuments()
	}
}

func (m Model) renderDocuments() string {
	store := m.snapshot.Documents
	if store.Loading {
		return m.spinner.View() + " loading documents..."
	}
	if len(store.Items) == 0 {
		return dimStyle.Render("No document collections. Press u to upload files.")
	}

	cursor := m.cursor[panel.TabDocuments]
	rows := make([]string, 0, len(store.Items))
	for i, c := range store.Items {
		line := fmt.Sprintf("%s  %s",
			domain.CollectionTitle(c),
			dimStyle.Render(fmt.Sprintf("%d file(s), %d document(s), %s",
				len(c.FileNames), c.DocumentCount, c.CreatedAt.Format("2006-01-02 15:04"))))
		rows = append(rows, m.renderRow(line, i == cursor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderChats() string {
	store := m.snapshot.Chats
	if store.Loading {
		return m.spinner.View() + " loading chats..."
	}
	if len(store.Items) == 0 {
		return dimStyle.Render("No chats imported. Press u to import a transcript.")
	}

	cursor := m.cursor[panel.TabChats]
	rows := make([]string, 0, len(store.Items))
	for i, c := range store.Items {
		line := fmt.Sprintf("%s  %s", c.FileName,
			dimStyle.Render(fmt.Sprintf("[%s] %d message(s)", c.Platform, c.MessageCount)))
		rows = append(rows, m.renderRow(line, i == cursor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTables() string {
	store := m.snapshot.Tables
	if store.Loading {
		return m.spinner.View() + " loading tables..."
	}
	if len(store.Items) == 0 {
		return dimStyle.Render("No tables exposed by the backend.")
	}

	cursor := m.cursor[panel.TabTables]
	var rows []string
	for i, tbl := range store.Items {
		_, expanded := store.Expanded[tbl.Name]
		marker := lo.Ternary(expanded, "▾", "▸")
		line := fmt.Sprintf("%s %s", marker, tbl.Name)
		if tbl.RowCount != nil {
			line += dimStyle.Render(fmt.Sprintf("  %d rows", *tbl.RowCount))
		}
		rows = append(rows, m.renderRow(line, i == cursor))

		if expanded {
			rows = append(rows, m.renderTableDetail(tbl)...)
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTableDetail(tbl domain.TableDescriptor) []string {
	if !tbl.HasDetail() {
		return []string{dimStyle.Render("    (no column detail available)")}
	}

	rows := lo.Map(tbl.Columns, func(col domain.ColumnDescriptor, _ int) string {
		attrs := []string{col.Type}
		if col.PrimaryKey {
			attrs = append(attrs, "PK")
		}
		if !col.IsNullable() {
			attrs = append(attrs, "NOT NULL")
		}
		return dimStyle.Render(fmt.Sprintf("    %s  %s", col.Name, strings.Join(attrs, " ")))
	})
	if n := len(tbl.SampleData); n > 0 {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("    %d sample row(s) loaded", n)))
	}
	return rows
}

func (m Model) renderRow(line string, selected bool) string {
	if selected {
		return selectedRowStyle.Render("> ") + line
	}
	return "  " + line
}

func (m Model) renderFooter() string {
	if m.notification != nil {
		style := infoStyle
		switch m.notification.Level {
		case notify.Error:
			style = errorStyle
		case notify.Success:
			style = successStyle
		}
		return style.Render(m.notification.Message)
	}
	return m.help.View(m.keys)
}
