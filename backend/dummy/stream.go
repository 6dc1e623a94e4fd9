package dummy

import (
	"log/slog"
	"sync"
	"time"

	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/engine"
	"github.com/loopwire-audio/loopwire/stream"
	"github.com/loopwire-audio/loopwire/timestamp"
)

func resolve(d *Device, requested stream.Config, fallback func() (stream.Config, error)) (stream.ResolvedConfig, error) {
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
		MaxFrameCount:  cfg.ClampBufferSize(DefaultBufferSize),
		ExclusiveMode:  cfg.ExclusiveMode,
	}, nil
}

// clock drives a periodic software callback on a goroutine it owns. It is
// the one place in this module where a backend supplies its own callback
// thread rather than having one supplied by a native library.
type clock struct {
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

func newClock(frames int, sampleRate float64) *clock {
	return &clock{interval: time.Duration(float64(frames) / sampleRate * float64(time.Second))}
}

func (c *clock) start(tick func()) {
	c.stop = make(chan struct{})
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		t := time.NewTicker(c.interval)
		defer t.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-t.C:
				tick()
			}
		}
	}()
}

func (c *clock) halt() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.wg.Wait()
}

// InputStream is a dummy stream that periodically hands its callback a
// silent buffer of captured audio.
type InputStream[Callback stream.InputCallback] struct {
	eng    *engine.Engine[Callback]
	clk    *clock
	frames int
	count  uint64
}

// CreateInputStream opens a dummy capture stream against d.
func CreateInputStream[Callback stream.InputCallback](d *Device, cfg stream.Config, cb Callback) (*InputStream[Callback], error) {
	resolved, err := resolve(d, cfg, d.DefaultInputConfig)
	if err != nil {
		return nil, err
	}
	s := &InputStream[Callback]{frames: resolved.MaxFrameCount}
	s.clk = newClock(resolved.MaxFrameCount, resolved.SampleRate)
	ops := engine.NativeOps{
		Start: func() error { s.clk.start(s.tick); return nil },
		Stop:  func() error { s.clk.halt(); return nil },
		Close: func() error { return nil },
	}
	s.eng = engine.New(cb, resolved, ops, slog.Default().With(slog.String("backend", "dummy")))
	if _, err := s.eng.AllocateScratch("in", resolved.InputChannels, resolved.MaxFrameCount); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *InputStream[Callback]) tick() {
	if s.eng.Ejecting() {
		return
	}
	buf := s.eng.ScratchInput()
	for c := range buf.Channels() {
		clear(buf.Channel(c))
	}
	s.count++
	ts := timestamp.FromCount(s.eng.Config().SampleRate, s.count*uint64(s.frames))
	ctx := stream.CallbackContext{Config: s.eng.Config(), Elapsed: ts}
	if err := s.eng.Callback().OnInputData(ctx, stream.AudioInput{Buf: *buf, Timestamp: ts}); err != nil {
		s.eng.RecordXrun()
	}
}

// Start runs the callback's Prepare hook and begins the software clock.
func (s *InputStream[Callback]) Start() error {
	return s.eng.Start(func() error { return s.eng.Callback().Prepare(s.eng.Config()) })
}

func (s *InputStream[Callback]) Stop() error { return s.eng.Stop() }

func (s *InputStream[Callback]) Eject() (Callback, error) { return s.eng.Eject() }

func (s *InputStream[Callback]) Config() stream.ResolvedConfig { return s.eng.Config() }

// OutputStream is a dummy stream that periodically asks its callback for a
// buffer of playback audio and discards it.
type OutputStream[Callback stream.OutputCallback] struct {
	eng    *engine.Engine[Callback]
	clk    *clock
	frames int
	count  uint64
}

// CreateOutputStream opens a dummy playback stream against d.
func CreateOutputStream[Callback stream.OutputCallback](d *Device, cfg stream.Config, cb Callback) (*OutputStream[Callback], error) {
	resolved, err := resolve(d, cfg, d.DefaultOutputConfig)
	if err != nil {
		return nil, err
	}
	s := &OutputStream[Callback]{frames: resolved.MaxFrameCount}
	s.clk = newClock(resolved.MaxFrameCount, resolved.SampleRate)
	ops := engine.NativeOps{
		Start: func() error { s.clk.start(s.tick); return nil },
		Stop:  func() error { s.clk.halt(); return nil },
		Close: func() error { return nil },
	}
	s.eng = engine.New(cb, resolved, ops, slog.Default().With(slog.String("backend", "dummy")))
	if _, err := s.eng.AllocateScratch("out", resolved.OutputChannels, resolved.MaxFrameCount); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *OutputStream[Callback]) tick() {
	if s.eng.Ejecting() {
		return
	}
	buf := s.eng.ScratchOutput()
	s.count++
	ts := timestamp.FromCount(s.eng.Config().SampleRate, s.count*uint64(s.frames))
	ctx := stream.CallbackContext{Config: s.eng.Config(), Elapsed: ts}
	if err := s.eng.Callback().OnOutputData(ctx, stream.AudioOutput{Buf: *buf, Timestamp: ts}); err != nil {
		s.eng.RecordXrun()
	}
}

func (s *OutputStream[Callback]) Start() error {
	return s.eng.Start(func() error { return s.eng.Callback().Prepare(s.eng.Config()) })
}

func (s *OutputStream[Callback]) Stop() error { return s.eng.Stop() }

func (s *OutputStream[Callback]) Eject() (Callback, error) { return s.eng.Eject() }

func (s *OutputStream[Callback]) Config() stream.ResolvedConfig { return s.eng.Config() }

// DuplexStream is a dummy stream presenting a single synchronized
// input+output callback, fed silence and discarding its output, in one
// tick.
type DuplexStream[Callback stream.DuplexCallback] struct {
	eng    *engine.Engine[Callback]
	clk    *clock
	frames int
	count  uint64
}

// CreateDuplexStream opens a dummy synchronized duplex stream against d.
// Devices that are not duplex-capable refuse with DuplexStreamRequested;
// bridge an input device and an output device with the duplex package
// instead.
func CreateDuplexStream[Callback stream.DuplexCallback](d *Device, cfg stream.Config, cb Callback) (*DuplexStream[Callback], error) {
	if !d.Type().Has(device.Duplex) {
		return nil, stream.NewError(stream.DuplexStreamRequested, d.Name(), nil)
	}
	resolved, err := resolve(d, cfg, d.DefaultConfig)
	if err != nil {
		return nil, err
	}
	s := &DuplexStream[Callback]{frames: resolved.MaxFrameCount}
	s.clk = newClock(resolved.MaxFrameCount, resolved.SampleRate)
	ops := engine.NativeOps{
		Start: func() error { s.clk.start(s.tick); return nil },
		Stop:  func() error { s.clk.halt(); return nil },
		Close: func() error { return nil },
	}
	s.eng = engine.New(cb, resolved, ops, slog.Default().With(slog.String("backend", "dummy")))
	if _, err := s.eng.AllocateScratch("in", resolved.InputChannels, resolved.MaxFrameCount); err != nil {
		return nil, err
	}
	if _, err := s.eng.AllocateScratch("out", resolved.OutputChannels, resolved.MaxFrameCount); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DuplexStream[Callback]) tick() {
	if s.eng.Ejecting() {
		return
	}
	in := s.eng.ScratchInput()
	out := s.eng.ScratchOutput()
	for c := range in.Channels() {
		clear(in.Channel(c))
	}
	s.count++
	ts := timestamp.FromCount(s.eng.Config().SampleRate, s.count*uint64(s.frames))
	ctx := stream.CallbackContext{Config: s.eng.Config(), Elapsed: ts}
	err := s.eng.Callback().OnDuplexData(ctx,
		stream.AudioInput{Buf: *in, Timestamp: ts},
		stream.AudioOutput{Buf: *out, Timestamp: ts})
	if err != nil {
		s.eng.RecordXrun()
	}
}

func (s *DuplexStream[Callback]) Start() error {
	return s.eng.Start(func() error { return s.eng.Callback().Prepare(s.eng.Config()) })
}

func (s *DuplexStream[Callback]) Stop() error { return s.eng.Stop() }

func (s *DuplexStream[Callback]) Eject() (Callback, error) { return s.eng.Eject() }

func (s *DuplexStream[Callback]) Config() stream.ResolvedConfig { return s.eng.Config() }
