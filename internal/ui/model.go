// ABOUTME: Bubbletea model for the playback TUI
// ABOUTME: Defines playback state, key handling and rendering
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const volumeStep = 5

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Model represents the TUI state
type Model struct {
	// Metadata
	title  string
	artist string
	album  string

	// Stream
	format     string
	sampleRate int
	channels   int
	layout     string

	// Playback
	position time.Duration
	volume   int
	muted    bool

	// Stats
	frames  int
	samples int
	encoded int
	cloned  int

	// Debug
	liveFrames int64
	liveBytes  int64
	showDebug  bool

	volumeCtrl *VolumeControl

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	lines := []string{titleStyle.Render("avframe player"), ""}
	lines = append(lines, m.renderStreamInfo()...)
	lines = append(lines, "", m.renderControls(), m.renderStats())
	if m.showDebug {
		lines = append(lines, m.renderDebug())
	}
	lines = append(lines, "", dimStyle.Render("↑/↓:Volume  m:Mute  d:Debug  q:Quit"))

	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderStreamInfo() []string {
	if m.format == "" {
		return []string{"No stream"}
	}

	lines := []string{"Now Playing:"}
	if m.title != "" {
		lines = append(lines,
			"  Track:  "+truncate(m.title, 42),
			"  Artist: "+truncate(m.artist, 42),
			"  Album:  "+truncate(m.album, 42))
	} else {
		lines = append(lines, "  (No metadata)")
	}
	lines = append(lines, fmt.Sprintf("Format: %s %dHz %s", m.format, m.sampleRate, channelName(m.channels, m.layout)))
	return lines
}

func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " 🔇"
	}
	return fmt.Sprintf("Volume: [%s] %d%%%s\nTime:   %s",
		renderBar(m.volume, 100, 10), m.volume, muteIcon, formatPosition(m.position))
}

func (m Model) renderStats() string {
	s := fmt.Sprintf("Frames: %d  Samples: %d", m.frames, m.samples)
	if m.cloned > 0 {
		s += fmt.Sprintf("  Cloned: %d", m.cloned)
	}
	if m.encoded > 0 {
		s += fmt.Sprintf("  Encoded: %dB", m.encoded)
	}
	return s
}

func (m Model) renderDebug() string {
	return dimStyle.Render(fmt.Sprintf("DEBUG: native frames %d, native bytes %d", m.liveFrames, m.liveBytes))
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume = min(m.volume+volumeStep, 100)
		m.sendVolume()
	case "down":
		m.volume = max(m.volume-volumeStep, 0)
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// sendVolume forwards the current volume without blocking the UI loop
func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Title != "" {
		m.title = msg.Title
		m.artist = msg.Artist
		m.album = msg.Album
	}
	if msg.Format != "" {
		m.format = msg.Format
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.layout = msg.Layout
	}
	if msg.Frames != 0 {
		m.frames = msg.Frames
		m.samples = msg.Samples
		m.encoded = msg.Encoded
		m.cloned = msg.Cloned
		m.position = msg.Position
		m.liveFrames = msg.LiveFrames
		m.liveBytes = msg.LiveBytes
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Title      string
	Artist     string
	Album      string
	Format     string
	SampleRate int
	Channels   int
	Layout     string
	Position   time.Duration
	Frames     int
	Samples    int
	Encoded    int
	Cloned     int
	LiveFrames int64
	LiveBytes  int64
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int, layout string) string {
	switch {
	case layout != "":
		return layout
	case channels == 1:
		return "Mono"
	case channels == 2:
		return "Stereo"
	}
	return fmt.Sprintf("%d channels", channels)
}

func formatPosition(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
