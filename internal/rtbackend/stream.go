package rtbackend

import (
	"log/slog"
	"time"

	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/engine"
	"github.com/loopwire-audio/loopwire/internal/nativertaudio"
	"github.com/loopwire-audio/loopwire/stream"
	"github.com/loopwire-audio/loopwire/timestamp"
)

// defaultFrames is the frame count requested from the native library when
// the caller supplies no buffer-size hints; rtaudio adjusts it to whatever
// the driver actually grants.
const defaultFrames = 512

func resolveConfig(d *Device, requested stream.Config, fallback func() (stream.Config, error)) (stream.ResolvedConfig, error) {
	cfg := requested
	def, err := fallback()
	if err != nil {
		return stream.ResolvedConfig{}, err
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.InputChannels == 0 {
		cfg.InputChannels = def.InputChannels
	}
	if cfg.OutputChannels == 0 {
		cfg.OutputChannels = def.OutputChannels
	}
	if cfg.Validate() != nil || !d.IsConfigSupported(cfg) {
		return stream.ResolvedConfig{}, stream.ConfigNotAvailable(requested)
	}
	return stream.ResolvedConfig{
		SampleRate:     cfg.SampleRate,
		InputChannels:  cfg.InputChannels,
		OutputChannels: cfg.OutputChannels,
		Format:         stream.FormatF32,
		MaxFrameCount:  cfg.ClampBufferSize(defaultFrames),
		ExclusiveMode:  cfg.ExclusiveMode,
	}, nil
}

// InputStream is a native capture stream on one rtbackend device.
type InputStream[Callback stream.InputCallback] struct {
	eng *engine.Engine[Callback]
}

// CreateInputStream opens a capture stream against dev.
func CreateInputStream[Callback stream.InputCallback](dev *Device, cfg stream.Config, cb Callback) (*InputStream[Callback], error) {
	resolved, err := resolveConfig(dev, cfg, dev.DefaultInputConfig)
	if err != nil {
		return nil, err
	}
	native, err := nativertaudio.Create(dev.driver.api)
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "create native stream", err)
	}
	s := &InputStream[Callback]{}
	s.eng = engine.New(cb, resolved, engine.NativeOps{
		Start: native.Start,
		Stop:  native.Stop,
		Close: func() error { native.Close(); dev.driver.markOpen(dev.info.ID, false); return nil },
	}, slog.Default().With(slog.String("backend", dev.driver.displayName)))

	scratch, err := s.eng.AllocateScratch("in", resolved.InputChannels, resolved.MaxFrameCount)
	if err != nil {
		return nil, err
	}

	frames, err := native.Open(nil, &nativertaudio.StreamParams{DeviceID: dev.info.ID, Channels: resolved.InputChannels}, resolved.SampleRate, resolved.MaxFrameCount,
		func(_, in []float32, n int, elapsed time.Duration, status nativertaudio.Status) int {
			if s.eng.Ejecting() {
				return 0
			}
			if status != nativertaudio.StatusNone {
				s.eng.RecordXrun()
			}
			if len(in) == 0 {
				// Some capture paths deliver an empty block after a device
				// reset; skip the iteration rather than treating it as an
				// error.
				return 0
			}
			if err := scratch.CopyFromInterleaved(in); err != nil {
				return 1
			}
			ts := timestamp.FromDuration(s.eng.Config().SampleRate, elapsed)
			ctx := stream.CallbackContext{Config: s.eng.Config(), Xrun: status != nativertaudio.StatusNone, Elapsed: ts}
			if err := s.eng.Callback().OnInputData(ctx, stream.AudioInput{Buf: *scratch, Timestamp: ts}); err != nil {
				return 1
			}
			return 0
		})
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "open input stream", err)
	}
	s.eng.SetMaxFrameCount(frames)
	dev.driver.markOpen(dev.info.ID, true)
	return s, nil
}

func (s *InputStream[Callback]) Start() error {
	return s.eng.Start(func() error { return s.eng.Callback().Prepare(s.eng.Config()) })
}
func (s *InputStream[Callback]) Stop() error                   { return s.eng.Stop() }
func (s *InputStream[Callback]) Eject() (Callback, error)      { return s.eng.Eject() }
func (s *InputStream[Callback]) Config() stream.ResolvedConfig { return s.eng.Config() }

// OutputStream is a native playback stream on one rtbackend device.
type OutputStream[Callback stream.OutputCallback] struct {
	eng *engine.Engine[Callback]
}

// CreateOutputStream opens a playback stream against dev.
func CreateOutputStream[Callback stream.OutputCallback](dev *Device, cfg stream.Config, cb Callback) (*OutputStream[Callback], error) {
	resolved, err := resolveConfig(dev, cfg, dev.DefaultOutputConfig)
	if err != nil {
		return nil, err
	}
	native, err := nativertaudio.Create(dev.driver.api)
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "create native stream", err)
	}
	s := &OutputStream[Callback]{}
	s.eng = engine.New(cb, resolved, engine.NativeOps{
		Start: native.Start,
		Stop:  native.Stop,
		Close: func() error { native.Close(); dev.driver.markOpen(dev.info.ID, false); return nil },
	}, slog.Default().With(slog.String("backend", dev.driver.displayName)))

	scratch, err := s.eng.AllocateScratch("out", resolved.OutputChannels, resolved.MaxFrameCount)
	if err != nil {
		return nil, err
	}

	frames, err := native.Open(&nativertaudio.StreamParams{DeviceID: dev.info.ID, Channels: resolved.OutputChannels}, nil, resolved.SampleRate, resolved.MaxFrameCount,
		func(out, _ []float32, n int, elapsed time.Duration, status nativertaudio.Status) int {
			if s.eng.Ejecting() {
				for i := range out {
					out[i] = 0
				}
				return 0
			}
			if status != nativertaudio.StatusNone {
				s.eng.RecordXrun()
			}
			ts := timestamp.FromDuration(s.eng.Config().SampleRate, elapsed)
			ctx := stream.CallbackContext{Config: s.eng.Config(), Xrun: status != nativertaudio.StatusNone, Elapsed: ts}
			if err := s.eng.Callback().OnOutputData(ctx, stream.AudioOutput{Buf: *scratch, Timestamp: ts}); err != nil {
				return 1
			}
			return boolToInt(scratch.CopyToInterleaved(out) != nil)
		})
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "open output stream", err)
	}
	s.eng.SetMaxFrameCount(frames)
	dev.driver.markOpen(dev.info.ID, true)
	return s, nil
}

func (s *OutputStream[Callback]) Start() error {
	return s.eng.Start(func() error { return s.eng.Callback().Prepare(s.eng.Config()) })
}
func (s *OutputStream[Callback]) Stop() error                   { return s.eng.Stop() }
func (s *OutputStream[Callback]) Eject() (Callback, error)      { return s.eng.Eject() }
func (s *OutputStream[Callback]) Config() stream.ResolvedConfig { return s.eng.Config() }

// DuplexStream is a native synchronized input+output stream on one device
// that presents both directions through a single rtaudio stream, as
// opposed to the duplex package's bridging of two independent streams.
type DuplexStream[Callback stream.DuplexCallback] struct {
	eng *engine.Engine[Callback]
}

// CreateDuplexStream opens a synchronized duplex stream against dev. A
// device that cannot capture and play back simultaneously refuses with
// DuplexStreamRequested; bridge two half-duplex devices with the duplex
// package instead.
func CreateDuplexStream[Callback stream.DuplexCallback](dev *Device, cfg stream.Config, cb Callback) (*DuplexStream[Callback], error) {
	if !dev.Type().Has(device.Duplex) {
		return nil, stream.NewError(stream.DuplexStreamRequested, dev.Name(), nil)
	}
	resolved, err := resolveConfig(dev, cfg, dev.DefaultConfig)
	if err != nil {
		return nil, err
	}
	native, err := nativertaudio.Create(dev.driver.api)
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "create native stream", err)
	}
	s := &DuplexStream[Callback]{}
	s.eng = engine.New(cb, resolved, engine.NativeOps{
		Start: native.Start,
		Stop:  native.Stop,
		Close: func() error { native.Close(); dev.driver.markOpen(dev.info.ID, false); return nil },
	}, slog.Default().With(slog.String("backend", dev.driver.displayName)))

	inScratch, err := s.eng.AllocateScratch("in", resolved.InputChannels, resolved.MaxFrameCount)
	if err != nil {
		return nil, err
	}
	outScratch, err := s.eng.AllocateScratch("out", resolved.OutputChannels, resolved.MaxFrameCount)
	if err != nil {
		return nil, err
	}

	frames, err := native.Open(
		&nativertaudio.StreamParams{DeviceID: dev.info.ID, Channels: resolved.OutputChannels},
		&nativertaudio.StreamParams{DeviceID: dev.info.ID, Channels: resolved.InputChannels},
		resolved.SampleRate, resolved.MaxFrameCount,
		func(out, in []float32, n int, elapsed time.Duration, status nativertaudio.Status) int {
			if s.eng.Ejecting() {
				for i := range out {
					out[i] = 0
				}
				return 0
			}
			if status != nativertaudio.StatusNone {
				s.eng.RecordXrun()
			}
			if err := inScratch.CopyFromInterleaved(in); err != nil {
				return 1
			}
			ts := timestamp.FromDuration(s.eng.Config().SampleRate, elapsed)
			ctx := stream.CallbackContext{Config: s.eng.Config(), Xrun: status != nativertaudio.StatusNone, Elapsed: ts}
			err := s.eng.Callback().OnDuplexData(ctx,
				stream.AudioInput{Buf: *inScratch, Timestamp: ts},
				stream.AudioOutput{Buf: *outScratch, Timestamp: ts})
			if err != nil {
				return 1
			}
			return boolToInt(outScratch.CopyToInterleaved(out) != nil)
		})
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "open duplex stream", err)
	}
	s.eng.SetMaxFrameCount(frames)
	dev.driver.markOpen(dev.info.ID, true)
	return s, nil
}

func (s *DuplexStream[Callback]) Start() error {
	return s.eng.Start(func() error { return s.eng.Callback().Prepare(s.eng.Config()) })
}
func (s *DuplexStream[Callback]) Stop() error                   { return s.eng.Stop() }
func (s *DuplexStream[Callback]) Eject() (Callback, error)      { return s.eng.Eject() }
func (s *DuplexStream[Callback]) Config() stream.ResolvedConfig { return s.eng.Config() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
