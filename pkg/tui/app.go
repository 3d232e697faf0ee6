package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/osvalr/mmbridge/pkg/automation"
	"github.com/osvalr/mmbridge/pkg/player"
)

// volumeStep is the per-keypress volume change.
const volumeStep = 5

// queueLimit caps how many queue entries the dashboard fetches per refresh.
const queueLimit = 50

// --- Tea messages ---

// refreshedMsg carries a fresh player snapshot and queue.
type refreshedMsg struct {
	state *player.State
	queue []player.Track
	err   error
}

// controlDoneMsg is sent after a transport command completes.
type controlDoneMsg struct {
	state *player.State
	err   error
}

// tickMsg drives the periodic refresh.
type tickMsg time.Time

// --- Model ---

// Model is the top-level Bubble Tea model for the dashboard.
type Model struct {
	session  automation.Session
	interval time.Duration

	state *player.State
	queue []player.Track

	width    int
	height   int
	showHelp bool
	errText  string
}

// NewModel builds the dashboard model. interval is the auto-refresh period.
func NewModel(sess automation.Session, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{session: sess, interval: interval}
}

// Run starts the dashboard in the alternate screen.
func Run(sess automation.Session, interval time.Duration) error {
	p := tea.NewProgram(NewModel(sess, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init returns the initial commands: first snapshot plus the refresh tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

// refresh fetches the player state and queue off the Update loop.
func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		state, err := player.Snapshot(m.session)
		if err != nil {
			return refreshedMsg{err: err}
		}
		queue, err := player.NowPlaying(m.session, queueLimit)
		if err != nil {
			return refreshedMsg{state: state, err: err}
		}
		return refreshedMsg{state: state, queue: queue}
	}
}

// control runs a transport action and reports the resulting state.
func (m Model) control(action player.Action) tea.Cmd {
	return func() tea.Msg {
		state, err := player.Control(m.session, action)
		return controlDoneMsg{state: state, err: err}
	}
}

// adjustVolume nudges the volume relative to the last known state.
func (m Model) adjustVolume(delta int) tea.Cmd {
	level := delta
	if m.state != nil {
		level = m.state.Volume + delta
	}
	return func() tea.Msg {
		state, err := player.SetVolume(m.session, level)
		return controlDoneMsg{state: state, err: err}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case refreshedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
		}
		if msg.state != nil {
			m.state = msg.state
		}
		if msg.queue != nil {
			m.queue = msg.queue
		}

	case controlDoneMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
			m.state = msg.state
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "esc", "?":
			m.showHelp = false
			return m, nil
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	case key.Matches(msg, keys.Toggle):
		return m, m.control(player.ActionToggle)
	case key.Matches(msg, keys.Stop):
		return m, m.control(player.ActionStop)
	case key.Matches(msg, keys.Next):
		return m, m.control(player.ActionNext)
	case key.Matches(msg, keys.Previous):
		return m, m.control(player.ActionPrevious)
	case key.Matches(msg, keys.Shuffle):
		return m, m.control(player.ActionShuffle)
	case key.Matches(msg, keys.Repeat):
		return m, m.control(player.ActionRepeat)
	case key.Matches(msg, keys.VolUp):
		return m, m.adjustVolume(volumeStep)
	case key.Matches(msg, keys.VolDown):
		return m, m.adjustVolume(-volumeStep)
	case key.Matches(msg, keys.Refresh):
		return m, m.refresh()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	if m.showHelp {
		return renderMarkdownWidth(helpMarkdown, width-4) + "\n" +
			keyBarStyle.Render(keyBarText(true))
	}

	var b strings.Builder

	b.WriteString(m.headerView(width))
	b.WriteString("\n")
	b.WriteString(m.trackView(width))
	b.WriteString("\n")
	b.WriteString(m.queueView(width))

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errText))
	}

	b.WriteString("\n")
	b.WriteString(keyBarStyle.Render(keyBarText(false)))
	return b.String()
}

func (m Model) headerView(width int) string {
	badge := stateBadgeStyle.Render(transportLabel(m.state))

	flags := ""
	if m.state != nil {
		if m.state.Shuffle {
			flags += " " + GlyphShuffle
		}
		if m.state.Repeat {
			flags += " " + GlyphRepeat
		}
	}

	volume := ""
	if m.state != nil {
		volume = trackMetaStyle.Render(fmt.Sprintf("vol %d%%", m.state.Volume))
	}

	left := headerStyle.Render("mmbridge") + badge + flags
	gap := width - lipgloss.Width(left) - lipgloss.Width(volume)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + volume
}

func (m Model) trackView(width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	if m.state == nil || m.state.Track == nil {
		return panelBorder.Width(inner + 2).Render(trackMetaStyle.Render("nothing playing"))
	}

	t := m.state.Track
	title := trackTitleStyle.Render(runewidth.Truncate(t.Title, inner, "…"))
	meta := trackMetaStyle.Render(runewidth.Truncate(
		fmt.Sprintf("%s — %s", t.Artist, t.Album), inner, "…"))

	bar := progressView(m.state.PositionMS, m.state.TrackLengthMS, inner)

	return panelBorder.Width(inner + 2).Render(title + "\n" + meta + "\n" + bar)
}

func (m Model) queueView(width int) string {
	if len(m.queue) == 0 {
		return queueDim.Render("  queue empty")
	}

	current := -1
	if m.state != nil {
		current = m.state.CurrentIndex
	}

	var lines []string
	for i, t := range m.queue {
		line := fmt.Sprintf("%s — %s", t.Title, t.Artist)
		line = runewidth.Truncate(line, width-6, "…")
		switch {
		case i == current:
			lines = append(lines, "  "+GlyphCurrent+" "+queueCurrent.Render(line))
		default:
			lines = append(lines, "    "+queueNormal.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// progressView renders "m:ss [=====----] m:ss".
func progressView(posMS, lengthMS, width int) string {
	pos := formatMS(posMS)
	total := formatMS(lengthMS)

	barWidth := width - len(pos) - len(total) - 4
	if barWidth < 4 {
		return trackMetaStyle.Render(pos + " / " + total)
	}

	filled := 0
	if lengthMS > 0 {
		filled = posMS * barWidth / lengthMS
		if filled > barWidth {
			filled = barWidth
		}
	}

	bar := progressStyle.Render(strings.Repeat("━", filled)) +
		progressRestStyle.Render(strings.Repeat("─", barWidth-filled))
	return trackMetaStyle.Render(pos) + " " + bar + " " + trackMetaStyle.Render(total)
}

// transportLabel names the playback state for the header badge.
func transportLabel(s *player.State) string {
	switch {
	case s == nil:
		return "  ?  "
	case s.Playing && !s.Paused:
		return GlyphPlaying + " PLAYING"
	case s.Paused:
		return GlyphPaused + " PAUSED"
	default:
		return GlyphStopped + " STOPPED"
	}
}

// formatMS renders milliseconds as m:ss.
func formatMS(ms int) string {
	if ms < 0 {
		ms = 0
	}
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
