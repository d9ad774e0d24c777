// ABOUTME: Audio frame package wrapping refcounted native frame handles
// ABOUTME: Provides Frame, Audio and the Samples view over frame planes
// Package frame wraps native media frame handles with safe accessors.
//
// A Frame owns exactly one native handle and releases it exactly once, on
// Close. Audio builds on Frame with the audio metadata (sample format,
// channel layout, channel count, sample rate, samples per channel), buffer
// allocation sized to that metadata, and deep cloning.
//
// Typical use:
//
//	f, err := frame.New(audio.SampleS16, 1024, audio.LayoutStereo)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	f.SetRate(48000)
//
//	view, err := f.SamplesMut()
//	_, err = view.WriteInt32(pcm)
//
// # Views
//
// Samples views borrow the frame's planes without copying. A view stays
// valid until the frame is reshaped (any metadata setter that affects the
// buffer shape), overwritten by CloneFrom, or closed; after that every view
// method returns ErrStaleView.
//
// # Concurrency
//
// A frame may be handed from one goroutine to another, but it must not be
// used from two goroutines at once without external locking.
//
// # Equality
//
// Two frames are equal only if they wrap the same handle. Frames with
// identical metadata and contents but separate handles are not equal.
package frame
