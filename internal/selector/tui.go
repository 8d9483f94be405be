package selector

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"bibmend/internal/bibtex"
	"bibmend/internal/resolve"
)

// TUI presents each candidate set interactively and records the
// reference the user picks. Quitting before the stream ends aborts
// the whole run.
type TUI struct{}

// NewTUI returns an interactive selector.
func NewTUI() *TUI {
	return &TUI{}
}

// Choose runs the selection program until every set has been decided
// or the user aborts. Aborting returns ErrAborted; a cancelled context
// returns the context error.
func (t *TUI) Choose(ctx context.Context, sets <-chan resolve.CandidateSet, total int) ([]resolve.Decision, error) {
	program := tea.NewProgram(newModel(sets, total), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("selection ui: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.aborted || !m.done {
		return nil, ErrAborted
	}
	return m.decisions, nil
}

type model struct {
	sets  <-chan resolve.CandidateSet
	total int

	progress  progress.Model
	current   *resolve.CandidateSet
	cursor    int
	decisions []resolve.Decision

	waiting bool
	aborted bool
	done    bool
	width   int
}

func newModel(sets <-chan resolve.CandidateSet, total int) model {
	return model{
		sets:     sets,
		total:    total,
		progress: progress.New(progress.WithDefaultGradient()),
		waiting:  true,
	}
}

func (m model) Init() tea.Cmd {
	return waitForSet(m.sets)
}

// waitForSet blocks on the candidate stream and reports either the
// next set or the end of the stream.
func waitForSet(sets <-chan resolve.CandidateSet) tea.Cmd {
	return func() tea.Msg {
		set, ok := <-sets
		if !ok {
			return streamDone{}
		}
		return nextSet{set: set}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.progress.Width = barWidth
		}
		return m, nil
	case nextSet:
		set := msg.set
		m.current = &set
		m.cursor = 0
		m.waiting = false
		return m, nil
	case streamDone:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q", "s":
		m.aborted = true
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.current != nil && m.cursor < len(m.current.Candidates)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m.choose(m.cursor)
	case "k":
		return m.choose(0)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return m.choose(int(key[0] - '1'))
		}
	}
	return m, nil
}

// choose records the decision for the current set and moves on to the
// next one. Index 0 is always the current reference.
func (m model) choose(index int) (tea.Model, tea.Cmd) {
	if m.waiting || m.current == nil {
		return m, nil
	}
	if index < 0 || index >= len(m.current.Candidates) {
		return m, nil
	}
	m.decisions = append(m.decisions, resolve.Decision{
		Current: m.current.Current,
		Chosen:  m.current.Candidates[index],
	})
	m.current = nil
	m.cursor = 0
	m.waiting = true
	return m, waitForSet(m.sets)
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select the reference to keep"))
	b.WriteString("\n\n")
	if m.total > 0 {
		b.WriteString("  " + m.progress.ViewAs(float64(len(m.decisions))/float64(m.total)))
		b.WriteString(fmt.Sprintf(" %d/%d", len(m.decisions), m.total))
		b.WriteString("\n\n")
	}

	if m.waiting || m.current == nil {
		b.WriteString(mutedStyle.Render("Fetching candidates..."))
		return b.String()
	}

	b.WriteString(currentPaneStyle.Render(strings.Join(bibtex.RenderLines(m.current.Current.Record), "\n")))
	b.WriteString("\n\n")
	for i, candidate := range m.current.Candidates {
		b.WriteString(m.renderCandidate(i, candidate))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("1-9 choose · up/down move · enter select · k keep current · q abort"))
	return b.String()
}

func (m model) renderCandidate(index int, ref resolve.Reference) string {
	number := fmt.Sprintf("%d", index+1)
	if index == 0 {
		number += " (current)"
	}
	meta := Caption(ref.Record)
	if ref.Year != 0 {
		meta = fmt.Sprintf("%d, %s", ref.Year, meta)
	}

	if index == m.cursor {
		block := strings.Join([]string{
			fmt.Sprintf("%s  %s", number, ref.Title),
			"   " + ref.Author,
			"   " + meta,
		}, "\n")
		return selectedRowStyle.Render(block)
	}
	block := strings.Join([]string{
		fmt.Sprintf("%s  %s", numberStyle.Render(number), ref.Title),
		"   " + detailStyle.Render(ref.Author),
		"   " + detailStyle.Render(meta),
	}, "\n")
	return normalRowStyle.Render(block)
}
