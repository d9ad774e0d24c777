// ABOUTME: Entry point for the avframe tool
// ABOUTME: Parses CLI flags and runs audio files through the frame pipeline
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/avframe/internal/app"
	"github.com/Resonate-Protocol/avframe/internal/native"
	"github.com/Resonate-Protocol/avframe/internal/ui"
	"github.com/Resonate-Protocol/avframe/internal/version"
	"github.com/Resonate-Protocol/avframe/pkg/audio/encode"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
	"github.com/Resonate-Protocol/avframe/pkg/audio/output"
	"github.com/Resonate-Protocol/avframe/pkg/audio/source"
)

const tuiLogFile = "avframe.log"

var (
	input       = flag.String("in", "", "Audio file to read (.mp3, .flac); empty plays a test tone")
	codec       = flag.String("codec", "", "Re-encode frames with this codec (pcm, opus)")
	frameSize   = flag.Int("frame-size", 0, "Samples per channel in each frame (default: 1024, or 20ms for opus)")
	maxFrames   = flag.Int("frames", 0, "Stop after this many frames (0 reads to the end)")
	play        = flag.Bool("play", false, "Play frames through the default audio device")
	clone       = flag.Bool("clone", false, "Deep-clone every frame and verify the copy")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile     = flag.String("log-file", "", "Also write logs to this file (default with TUI: "+tuiLogFile+")")
	noTUI       = flag.Bool("no-tui", false, "Disable the playback TUI, use streaming logs instead")
	streamLogs  = flag.Bool("stream-logs", false, "Alias for -no-tui")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit
func run() int {
	if *showVersion {
		fmt.Println(version.String())
		return 0
	}

	// The TUI only makes sense while playing
	useTUI := *play && !(*noTUI || *streamLogs)

	// Set up logging
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Errorf("invalid log level: %v", err)
		return 2
	}
	logrus.SetLevel(level)

	path := *logFile
	if useTUI && path == "" {
		path = tuiLogFile
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			logrus.Errorf("error opening log file: %v", err)
			return 1
		}
		defer func() { _ = f.Close() }()

		if useTUI {
			// TUI mode: log only to file
			logrus.SetOutput(f)
		} else {
			// Log to both stdout and file
			logrus.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	if err := runPipeline(useTUI); err != nil {
		logrus.Errorf("%v", err)
		return 1
	}
	return 0
}

func runPipeline(useTUI bool) error {
	size := *frameSize
	if size == 0 && *codec == "opus" {
		// Opus needs 20ms frames; sources of other rates will be rejected by the encoder
		size = encode.FrameSize(48000)
	}

	src, err := source.New(*input, size)
	if err != nil {
		return err
	}

	if *codec == "opus" && *frameSize == 0 {
		if want := encode.FrameSize(src.SampleRate()); want != size {
			src.Close()
			if src, err = source.New(*input, want); err != nil {
				return err
			}
		}
	}

	// Handle shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	config := app.Config{
		Codec:     *codec,
		Clone:     *clone,
		MaxFrames: *maxFrames,
	}

	var out output.Output
	if *play {
		player := output.NewOto()
		out = player

		if useTUI {
			tuiProg, volumeCtrl, done, err := startTUI(src)
			if err != nil {
				src.Close()
				return err
			}
			defer func() {
				tuiProg.Quit()
				<-done
			}()

			go handleVolumeControl(ctx, cancel, player, volumeCtrl)
			config.OnFrame = statusUpdater(tuiProg)
		}
	}

	pipeline, err := app.New(config, src, out)
	if err != nil {
		src.Close()
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logrus.Warnf("close failed: %v", err)
		}
	}()

	stats, err := pipeline.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}

	logrus.Infof("frames=%d samples=%d cloned=%d encoded_bytes=%d",
		stats.Frames, stats.Samples, stats.Cloned, stats.Encoded)
	return nil
}

// startTUI runs the status view in the background. done is closed when the
// program has exited and restored the terminal.
func startTUI(src source.Source) (*tea.Program, *ui.VolumeControl, <-chan struct{}, error) {
	volumeCtrl := ui.NewVolumeControl()
	tuiProg, err := ui.Run(volumeCtrl)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to start TUI: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := tuiProg.Run(); err != nil {
			logrus.Errorf("tui: %v", err)
		}
	}()

	title, artist, album := src.Metadata()
	tuiProg.Send(ui.StatusMsg{Title: title, Artist: artist, Album: album})
	return tuiProg, volumeCtrl, done, nil
}

// handleVolumeControl processes volume changes from TUI
func handleVolumeControl(ctx context.Context, cancel context.CancelFunc, player *output.Oto, volumeCtrl *ui.VolumeControl) {
	for {
		select {
		case vol := <-volumeCtrl.Changes:
			logrus.Debugf("tui: volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			player.SetVolume(vol.Volume)
			player.SetMuted(vol.Muted)
		case <-volumeCtrl.Quit:
			logrus.Infof("tui: received quit")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// statusUpdater returns a frame callback that forwards playback progress to
// the TUI at most every 200ms
func statusUpdater(tuiProg *tea.Program) func(*frame.Audio, app.Stats) {
	var last time.Time
	first := true

	return func(f *frame.Audio, stats app.Stats) {
		msg := ui.StatusMsg{
			Position:   framePosition(f),
			Frames:     stats.Frames,
			Samples:    stats.Samples,
			Encoded:    stats.Encoded,
			Cloned:     stats.Cloned,
			LiveFrames: native.LiveFrames(),
			LiveBytes:  native.LiveBytes(),
		}
		if first {
			msg.Format = f.Format().String()
			msg.SampleRate = int(f.Rate())
			msg.Channels = int(f.Channels())
			msg.Layout = f.ChannelLayout().String()
			first = false
		} else if time.Since(last) < 200*time.Millisecond {
			return
		}
		last = time.Now()
		tuiProg.Send(msg)
	}
}

// framePosition converts the end of f into a playback position
func framePosition(f *frame.Audio) time.Duration {
	num, den := f.TimeBase()
	if f.PTS() == frame.NoPTS || num <= 0 || den <= 0 {
		return 0
	}
	end := f.PTS() + f.Duration()
	return time.Duration(end) * time.Second * time.Duration(num) / time.Duration(den)
}
