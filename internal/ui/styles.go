package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/muurk/maptools/internal/version"
)

// Application branding
const (
	AppName   = "MAPTOOLS"
	GitHubURL = "github.com/muurk/maptools"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - selection, success
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - notices
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth  = 60  // Minimum supported terminal width
	MinTerminalHeight = 20  // Minimum supported terminal height
	PanelWidth        = 38  // Side panel width beside the map
	MaxContentWidth   = 120 // Maximum content width before capping
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	// Menu item style (selected)
	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// PanelStyle frames text panels drawn beside the map
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1).
			Width(PanelWidth)

	// ModalStyle frames wizard dialogs
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(WarningColor).
			Padding(0, 1).
			Width(PanelWidth)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with its hotkey and a selection indicator
func RenderMenuItem(text, hotkey string, selected bool) string {
	label := text
	if hotkey != "" {
		label = HotkeyStyle.Render("["+hotkey+"]") + " " + text
	}
	if selected {
		return SelectedMenuItemStyle.Render("→ ") + label
	}
	return MenuItemStyle.Render(label)
}

// RenderPanel frames a side panel
func RenderPanel(content string) string {
	return PanelStyle.Render(content)
}

// RenderModal frames a modal dialog
func RenderModal(content string) string {
	return ModalStyle.Render(content)
}

// RenderError renders an error line
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// RenderSuccess renders a success line
func RenderSuccess(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// RenderNotice renders a diagnostic line for the footer
func RenderNotice(text string) string {
	return NoticeStyle.Render("! " + text)
}

// BuildHeaderContent creates header content with app name, version and the
// current map.
func BuildHeaderContent(mapName string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	right := lipgloss.NewStyle().
		Foreground(MutedColor).
		Render(mapName)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a full-screen view with the header, the
// footer and an outer border sized to the terminal.
func RenderApplicationContainer(content, mapName, footer string, terminalWidth, terminalHeight int) string {
	terminalWidth = max(terminalWidth, MinTerminalWidth)
	terminalHeight = max(terminalHeight, MinTerminalHeight)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(PrimaryColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(PrimaryColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(mapName)),
		lipgloss.NewStyle().Width(terminalWidth-4).Render(content),
		footerStyle.Render(footer),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// MapArea returns the columns and rows left for the map once the application
// container and the side panel are laid out.
func MapArea(terminalWidth, terminalHeight int) (int, int) {
	// border (2) + inner width padding (2) + panel (+2 border) + gap
	w := terminalWidth - 4 - PanelWidth - 3
	// border (2) + header (2) + footer (2) + osd (1)
	h := terminalHeight - 7
	return max(w, 10), max(h, 5)
}

// GetTerminalWidth returns the current terminal width, or the minimum when
// stdout is not a terminal.
func GetTerminalWidth() int {
	w, _ := GetTerminalSize()
	return w
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return MaxContentWidth, 40
	}
	return width, height
}
