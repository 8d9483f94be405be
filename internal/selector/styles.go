package selector

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
)

// titleStyle renders the program header.
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// currentPaneStyle frames the full current reference.
var currentPaneStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

// selectedRowStyle highlights the candidate under the cursor.
var selectedRowStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// normalRowStyle renders unselected candidate rows.
var normalRowStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// numberStyle renders the candidate's selection digit.
var numberStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// detailStyle renders the author line and the entry-type caption.
var detailStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// mutedStyle renders waiting notices and the help footer.
var mutedStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)
