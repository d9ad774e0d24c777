// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling and rendering helpers
package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // VolumeControl is optional for testing

	if model.volume != 100 {
		t.Errorf("expected default volume 100, got %d", model.volume)
	}

	if model.muted {
		t.Error("expected muted to be false initially")
	}

	if model.showDebug {
		t.Error("expected showDebug to be false initially")
	}
}

func TestStatusMsgStream(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		Title:      "Song",
		Artist:     "Artist",
		Album:      "Album",
		Format:     "s16",
		SampleRate: 44100,
		Channels:   2,
		Layout:     "stereo",
	})

	if model.title != "Song" || model.artist != "Artist" || model.album != "Album" {
		t.Errorf("expected metadata Song/Artist/Album, got %s/%s/%s", model.title, model.artist, model.album)
	}
	if model.format != "s16" || model.sampleRate != 44100 || model.channels != 2 {
		t.Errorf("expected s16 44100Hz 2ch, got %s %dHz %dch", model.format, model.sampleRate, model.channels)
	}
}

func TestStatusMsgProgressKeepsStream(t *testing.T) {
	model := NewModel(nil)
	model.applyStatus(StatusMsg{Format: "fltp", SampleRate: 48000, Channels: 2})

	model.applyStatus(StatusMsg{
		Frames:   10,
		Samples:  10240,
		Position: 2 * time.Second,
	})

	if model.format != "fltp" {
		t.Errorf("expected format fltp to survive progress update, got %q", model.format)
	}
	if model.frames != 10 || model.samples != 10240 {
		t.Errorf("expected 10 frames/10240 samples, got %d/%d", model.frames, model.samples)
	}
	if model.position != 2*time.Second {
		t.Errorf("expected position 2s, got %v", model.position)
	}
}

func TestHandleKeyVolume(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		key      tea.KeyType
		expected int
	}{
		{"up", 50, tea.KeyUp, 55},
		{"up at max", 100, tea.KeyUp, 100},
		{"up near max", 98, tea.KeyUp, 100},
		{"down", 50, tea.KeyDown, 45},
		{"down at min", 0, tea.KeyDown, 0},
		{"down near min", 3, tea.KeyDown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewVolumeControl()
			model := NewModel(ctrl)
			model.volume = tt.start

			updated, _ := model.handleKey(tea.KeyMsg{Type: tt.key})
			m := updated.(Model)

			if m.volume != tt.expected {
				t.Errorf("expected volume %d, got %d", tt.expected, m.volume)
			}

			select {
			case change := <-ctrl.Changes:
				if change.Volume != tt.expected {
					t.Errorf("expected change volume %d, got %d", tt.expected, change.Volume)
				}
			default:
				t.Error("expected a volume change to be sent")
			}
		})
	}
}

func TestHandleKeyMute(t *testing.T) {
	ctrl := NewVolumeControl()
	model := NewModel(ctrl)

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m := updated.(Model)

	if !m.muted {
		t.Error("expected muted after pressing m")
	}
	change := <-ctrl.Changes
	if !change.Muted || change.Volume != 100 {
		t.Errorf("expected muted change at volume 100, got %+v", change)
	}
}

func TestHandleKeyQuit(t *testing.T) {
	ctrl := NewVolumeControl()
	model := NewModel(ctrl)

	_, cmd := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected command to produce tea.QuitMsg")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit to be signalled on the volume control")
	}

	// Repeated quits must not block once the channel is full
	model.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	model.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func TestHandleKeyWithoutControl(t *testing.T) {
	model := NewModel(nil)

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if updated.(Model).volume != 100 {
		t.Errorf("expected volume 100, got %d", updated.(Model).volume)
	}
	updated, _ = model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if !updated.(Model).showDebug {
		t.Error("expected debug toggled on")
	}
}

func TestView(t *testing.T) {
	model := NewModel(nil)
	if view := model.View(); view != "Loading..." {
		t.Errorf("expected Loading... before the first resize, got %q", view)
	}

	next, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	next, _ = next.Update(StatusMsg{Title: "Song", Format: "s16", SampleRate: 44100, Channels: 2})
	view := next.View()

	for _, want := range []string{"Song", "s16 44100Hz Stereo", "Volume:"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
	}

	for _, tt := range tests {
		if got := renderBar(tt.value, 100, 10); got != tt.expected {
			t.Errorf("renderBar(%d): expected %q, got %q", tt.value, tt.expected, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected short, got %q", got)
	}
	if got := truncate("a very long track title", 10); got != "a very ..." {
		t.Errorf("expected %q, got %q", "a very ...", got)
	}
}

func TestChannelName(t *testing.T) {
	tests := []struct {
		channels int
		layout   string
		expected string
	}{
		{1, "", "Mono"},
		{2, "", "Stereo"},
		{6, "", "6 channels"},
		{6, "5.1", "5.1"},
	}

	for _, tt := range tests {
		if got := channelName(tt.channels, tt.layout); got != tt.expected {
			t.Errorf("channelName(%d, %q): expected %q, got %q", tt.channels, tt.layout, tt.expected, got)
		}
	}
}

func TestFormatPosition(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00"},
		{1500 * time.Millisecond, "0:01"},
		{65 * time.Second, "1:05"},
		{61 * time.Minute, "61:00"},
	}

	for _, tt := range tests {
		if got := formatPosition(tt.d); got != tt.expected {
			t.Errorf("formatPosition(%v): expected %q, got %q", tt.d, tt.expected, got)
		}
	}
}
