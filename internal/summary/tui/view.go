package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	focusDotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	blurDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dateStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const marginX = 2

func (m *Model) renderView() string {
	var b strings.Builder

	width := m.width
	if width == 0 {
		width = 80
	}

	// Content width excludes left and right margins
	contentWidth := width - 2*marginX
	if contentWidth < 20 {
		contentWidth = 20
	}
	margin := strings.Repeat(" ", marginX)

	b.WriteString(margin + m.renderHeader())
	b.WriteString("\n")
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("=", contentWidth)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(margin + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.showHelp:
		b.WriteString(m.renderHelp(margin))
	case m.viewState == CategoryDetailView:
		b.WriteString(m.renderDetail(margin, contentWidth))
	default:
		b.WriteString(m.renderList(margin, contentWidth))
	}

	// Status bar
	b.WriteString("\n")
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	b.WriteString(margin + m.renderStatusBar())

	return b.String()
}

func (m *Model) renderHeader() string {
	dot := focusDotStyle.Render("●")
	if !m.focused {
		dot = blurDotStyle.Render("○")
	}

	if m.viewState == CategoryDetailView && len(m.categories) > 0 {
		name := m.categories[m.selectedIdx].Name
		return headerStyle.Render("Category") + " " + dot + " " + headerStyle.Render(name)
	}
	return headerStyle.Render("Categories") + " " + dot + " " + headerStyle.Render(fmt.Sprintf("(%d)", len(m.categories)))
}

func (m *Model) renderList(margin string, width int) string {
	if len(m.categories) == 0 {
		return margin + "No categories found\n"
	}

	// The largest category is first, so its count is the widest
	countWidth := len(postCountText(len(m.categories[0].Posts)))

	var b strings.Builder
	for i, category := range m.categories {
		b.WriteString(margin + renderCategoryItem(category, i == m.selectedIdx, width, countWidth))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCategoryItem(category CategoryItem, selected bool, width int, countWidth int) string {
	countText := postCountText(len(category.Posts))

	// prefix is 2 chars ("  " or "▶ ")
	prefix := "  "
	if selected {
		prefix = "▶ "
	}

	// Available space for name: width - prefix(2) - gap(2) - countWidth
	gap := 2
	nameMaxWidth := width - 2 - gap - countWidth
	if nameMaxWidth < 10 {
		nameMaxWidth = 10
	}
	name := truncateWithEllipsis(category.Name, nameMaxWidth)

	// Right-align the count
	padding := width - ansi.StringWidth(prefix) - ansi.StringWidth(name) - ansi.StringWidth(countText)
	if padding < 1 {
		padding = 1
	}

	line := prefix + name + strings.Repeat(" ", padding) + countText

	if selected {
		return selectedStyle.Render(line)
	}
	return normalStyle.Render(line)
}

// postCountText pads the singular so counts stay aligned
func postCountText(n int) string {
	if n == 1 {
		return "1 post "
	}
	return fmt.Sprintf("%d posts", n)
}

func (m *Model) renderDetail(margin string, width int) string {
	if len(m.detailPosts) == 0 {
		return margin + "No posts\n"
	}

	end := len(m.detailPosts)
	if m.height > 0 {
		avail := m.height - 6
		if avail < 1 {
			avail = 1
		}
		if m.detailScrollOffset+avail < end {
			end = m.detailScrollOffset + avail
		}
	}

	var b strings.Builder
	for i := m.detailScrollOffset; i < end; i++ {
		post := m.detailPosts[i]

		prefix := "  "
		if i == m.detailPostIdx {
			prefix = "▶ "
		}
		// date(10) + gap(2)
		title := truncateWithEllipsis(fmt.Sprintf("%s (%s)", post.Title, post.Slug), width-2-12)
		line := prefix + dateStyle.Render(post.Date()) + "  "
		if i == m.detailPostIdx {
			line += selectedStyle.Render(title)
		} else {
			line += normalStyle.Render(title)
		}

		b.WriteString(margin + line + "\n")
	}
	return b.String()
}

func (m *Model) renderHelp(margin string) string {
	var b strings.Builder
	for _, binding := range bindingsForView(m.viewState) {
		b.WriteString(fmt.Sprintf("%s%-6s %s\n", margin, binding.key, binding.desc))
	}
	return b.String()
}

// truncateWithEllipsis truncates a string to maxWidth, adding … if truncated
func truncateWithEllipsis(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	// Truncate to maxWidth-1 to leave room for …
	truncated := ansi.Truncate(s, maxWidth-1, "")
	return truncated + "…"
}

func (m *Model) renderStatusBar() string {
	if m.status != "" {
		return statusBarStyle.Render(m.status)
	}
	if m.viewState == CategoryDetailView {
		return statusBarStyle.Render("[j/k] Select  [y] Yank slug  [H/L] Category  [-] Back  [?] Help  [q] Quit")
	}
	return statusBarStyle.Render("[j/k] Select  [Enter] Drill in  [r] Reload  [?] Help  [q] Quit")
}
