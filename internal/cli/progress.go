package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/kangxi-radicals/internal/fetch"
)

// Theme holds the color scheme for progress and summary output.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Label   lipgloss.Color
}

var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Label:   lipgloss.Color("#AFAFAF"), // light gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Label)
}

// downloadMsg carries one progress callback.
type downloadMsg struct {
	name     string
	received int64
	total    int64
}

// fetchDoneMsg ends the program.
type fetchDoneMsg struct {
	files []fetch.File
	err   error
}

// downloadModel is the bubbletea model for source downloads.
type downloadModel struct {
	progress progress.Model
	theme    Theme
	current  downloadMsg
	files    []fetch.File
	done     bool
	quitting bool
	err      error
}

func newDownloadModel() downloadModel {
	return downloadModel{
		progress: progress.New(
			progress.WithDefaultBlend(),
			progress.WithWidth(40),
		),
		theme: defaultTheme,
	}
}

// Init returns the initial command.
func (m downloadModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case downloadMsg:
		m.current = msg
		return m, nil

	case fetchDoneMsg:
		m.done = true
		m.files = msg.files
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m downloadModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m downloadModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}
	if m.current.name == "" {
		return m.theme.statusStyle().Render("Connecting...") + "\n"
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.current.name))
	var pct float64
	counts := formatBytes(m.current.received)
	if m.current.total > 0 {
		pct = float64(m.current.received) / float64(m.current.total)
		counts += " / " + formatBytes(m.current.total)
	}
	hint := m.theme.hintStyle().Render("Press q to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, m.progress.ViewAs(pct), counts, hint)
}

func (m downloadModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("Download cancelled.") + "\n"
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("✗ Download failed: %s", m.err)) + "\n"
	}
	return m.theme.completedStyle().Render("✓ Sources ready") + "\n" + renderFiles(m.files, m.theme)
}

// renderFiles lists fetched files, one per line.
func renderFiles(files []fetch.File, theme Theme) string {
	var b strings.Builder
	for _, f := range files {
		state := "downloaded"
		if f.Skipped {
			state = "present"
		}
		fmt.Fprintf(&b, "  %-32s %10s  %s\n", f.Name, formatBytes(f.Bytes), theme.labelStyle().Render(state))
	}
	return b.String()
}

// runFetchProgress runs fetch under the progress UI. Quitting the UI cancels the download.
func runFetchProgress(ctx context.Context, run func(context.Context, fetch.Progress) ([]fetch.File, error)) ([]fetch.File, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newDownloadModel(), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	result := make(chan fetchDoneMsg, 1)
	go func() {
		files, err := run(ctx, func(name string, received, total int64) {
			p.Send(downloadMsg{name: name, received: received, total: total})
		})
		done := fetchDoneMsg{files: files, err: err}
		result <- done
		p.Send(done)
	}()

	finalModel, err := p.Run()
	if m, ok := finalModel.(downloadModel); ok && m.quitting {
		cancel()
	}
	done := <-result
	if err != nil && done.err == nil {
		return done.files, fmt.Errorf("progress UI error: %w", err)
	}
	return done.files, done.err
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
