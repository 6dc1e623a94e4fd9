// Package nativertaudio binds the rtaudio C++ library, the native
// collaborator every real backend in this module (alsa, wasapi, coreaudio,
// asio, pipewire) drives its actual hardware I/O through. rtaudio itself
// owns the thread that invokes the audio callback for every one of its
// compiled APIs; this package's job is only to move bytes across the cgo
// boundary and hand the higher Go layers a float32, interleaved view of
// them, not to reimplement any of rtaudio's driver logic.
//
// lib/rtaudio_c.h is not vendored into this module, and neither is
// build.go, the generator script the go:generate directive below runs;
// both have to be supplied before this package compiles.
package nativertaudio

//go:generate go run build.go

/*
#cgo CXXFLAGS: -std=c++11 -g
#cgo CFLAGS: -g
#cgo windows CXXFLAGS: -D__WINDOWS_WASAPI__ -D__WINDOWS_ASIO__
#cgo windows CFLAGS: -D__WINDOWS_WASAPI__ -D__WINDOWS_ASIO__
#cgo windows LDFLAGS: ${SRCDIR}/rtaudio_go.o -lstdc++ -lm -lole32 -lwinmm -lksuser -lmfplat -lmfuuid -lwmcodecdspuuid -static -g
#cgo linux CXXFLAGS: -D__LINUX_ALSA__ -D__LINUX_PULSE__
#cgo linux LDFLAGS: -lasound -lpulse -lpulse-simple
#cgo darwin CXXFLAGS: -D__MACOSX_CORE__
#cgo darwin LDFLAGS: -framework CoreAudio -framework CoreFoundation
#include "lib/rtaudio_c.h"
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

extern int goNativeCallback(void *out, void *in, unsigned int nFrames,
	double stream_time, rtaudio_stream_status_t status, void *userdata);

static inline void cgoOpenStream(rtaudio_t audio,
	rtaudio_stream_parameters_t *output_params,
	rtaudio_stream_parameters_t *input_params,
	rtaudio_format_t format,
	unsigned int sample_rate,
	unsigned int *buffer_frames,
	int cb_id,
	rtaudio_stream_options_t *options) {
		rtaudio_open_stream(audio, output_params, input_params,
			format, sample_rate, buffer_frames,
			goNativeCallback, (void *)(uintptr_t)cb_id, options, NULL);
}
*/
import "C"

import (
	"errors"
	"sync"
	"time"
	"unsafe"
)

// API selects which of rtaudio's compiled native backends a Stream talks
// to.
type API C.rtaudio_api_t

const (
	APIUnspecified API = C.RTAUDIO_API_UNSPECIFIED
	APIAlsa            = C.RTAUDIO_API_LINUX_ALSA
	APIPulse           = C.RTAUDIO_API_LINUX_PULSE
	APIOSS             = C.RTAUDIO_API_LINUX_OSS
	APIJack            = C.RTAUDIO_API_UNIX_JACK
	APICoreAudio       = C.RTAUDIO_API_MACOSX_CORE
	APIWasapi          = C.RTAUDIO_API_WINDOWS_WASAPI
	APIAsio             = C.RTAUDIO_API_WINDOWS_ASIO
	APIDirectSound     = C.RTAUDIO_API_WINDOWS_DS
)

func (api API) String() string {
	switch api {
	case APIAlsa:
		return "alsa"
	case APIPulse:
		return "pulse"
	case APIOSS:
		return "oss"
	case APIJack:
		return "jack"
	case APICoreAudio:
		return "coreaudio"
	case APIWasapi:
		return "wasapi"
	case APIAsio:
		return "asio"
	case APIDirectSound:
		return "directsound"
	default:
		return "unspecified"
	}
}

// Status flags an xrun condition reported by the native callback for the
// current invocation.
type Status int

const (
	StatusNone Status = iota
	StatusInputOverflow
	StatusOutputUnderflow
)

// DeviceInfo mirrors rtaudio_device_info_t in Go types.
type DeviceInfo struct {
	ID                  int
	Name                string
	InputChannels       int
	OutputChannels      int
	DuplexChannels      int
	IsDefaultInput      bool
	IsDefaultOutput     bool
	PreferredSampleRate float64
	SampleRates         []float64
}

// StreamParams mirrors rtaudio_stream_parameters_t.
type StreamParams struct {
	DeviceID     int
	Channels     int
	FirstChannel int
}

// Callback is invoked from rtaudio's own callback thread on every block.
// out and in are raw interleaved float32 samples (len ==
// frames*channels for that direction; in is nil/empty for an
// output-only stream and out is nil/empty for an input-only stream).
// Returning non-zero requests that rtaudio stop the stream.
type Callback func(out, in []float32, frames int, elapsed time.Duration, status Status) int

// Stream is a single opened rtaudio stream.
type Stream struct {
	audio          C.rtaudio_t
	cb             Callback
	inputChannels  int
	outputChannels int
}

// Create instantiates a new native controller for api.
func Create(api API) (*Stream, error) {
	audio := C.rtaudio_create(C.rtaudio_api_t(api))
	if C.rtaudio_error(audio) != nil {
		return nil, errors.New(C.GoString(C.rtaudio_error(audio)))
	}
	return &Stream{audio: audio}, nil
}

// Version returns the rtaudio library version string.
func Version() string { return C.GoString(C.rtaudio_version()) }

// CompiledAPIs lists the backends this rtaudio build was compiled with.
func CompiledAPIs() []API {
	capis := (*[1 << 27]C.rtaudio_api_t)(unsafe.Pointer(C.rtaudio_compiled_api()))
	var apis []API
	for i := 0; ; i++ {
		api := capis[i]
		if api == C.RTAUDIO_API_UNSPECIFIED {
			break
		}
		apis = append(apis, API(api))
	}
	return apis
}

// Devices enumerates every device the native backend can see.
func (s *Stream) Devices() ([]DeviceInfo, error) {
	n := C.rtaudio_device_count(s.audio)
	var devices []DeviceInfo
	for i := C.int(0); i < n; i++ {
		id := C.rtaudio_get_device_id(s.audio, i)
		cinfo := C.rtaudio_get_device_info(s.audio, id)
		if C.rtaudio_error(s.audio) != nil {
			return nil, errors.New(C.GoString(C.rtaudio_error(s.audio)))
		}
		var rates []float64
		for _, r := range cinfo.sample_rates {
			if r == 0 {
				break
			}
			rates = append(rates, float64(r))
		}
		devices = append(devices, DeviceInfo{
			ID:                  int(id),
			Name:                C.GoString(&cinfo.name[0]),
			InputChannels:       int(cinfo.input_channels),
			OutputChannels:      int(cinfo.output_channels),
			DuplexChannels:      int(cinfo.duplex_channels),
			IsDefaultInput:      cinfo.is_default_input != 0,
			IsDefaultOutput:     cinfo.is_default_output != 0,
			PreferredSampleRate: float64(cinfo.preferred_sample_rate),
			SampleRates:         rates,
		})
	}
	return devices, nil
}

func (s *Stream) DefaultInputDeviceID() int {
	return int(C.rtaudio_get_default_input_device(s.audio))
}

func (s *Stream) DefaultOutputDeviceID() int {
	return int(C.rtaudio_get_default_output_device(s.audio))
}

var (
	registryMu sync.Mutex
	registry   = map[int]*Stream{}
	nextHandle int
)

func register(s *Stream) int {
	registryMu.Lock()
	defer registryMu.Unlock()
	h := nextHandle
	nextHandle++
	registry[h] = s
	return h
}

func unregister(h int) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, h)
}

func find(h int) *Stream {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[h]
}

//export goNativeCallback
func goNativeCallback(out, in unsafe.Pointer, frames C.uint, sec C.double, status C.rtaudio_stream_status_t, userdata unsafe.Pointer) C.int {
	k := int(uintptr(userdata))
	s := find(k)
	if s == nil || s.cb == nil {
		return 0
	}
	dur := time.Duration(float64(sec) * float64(time.Second))
	n := int(frames)

	var outSlice, inSlice []float32
	if out != nil && s.outputChannels > 0 {
		outSlice = (*[1 << 27]float32)(out)[: n*s.outputChannels : n*s.outputChannels]
	}
	if in != nil && s.inputChannels > 0 {
		inSlice = (*[1 << 27]float32)(in)[: n*s.inputChannels : n*s.inputChannels]
	}
	var st Status
	switch {
	case status&C.RTAUDIO_STATUS_INPUT_OVERFLOW != 0:
		st = StatusInputOverflow
	case status&C.RTAUDIO_STATUS_OUTPUT_UNDERFLOW != 0:
		st = StatusOutputUnderflow
	}
	return C.int(s.cb(outSlice, inSlice, n, dur, st))
}

var activeHandle = map[*Stream]int{}
var activeHandleMu sync.Mutex

// Open opens a stream in native float32 format. out and/or in may be nil
// for a one-directional stream.
func (s *Stream) Open(out, in *StreamParams, sampleRate float64, frames int, cb Callback) (int, error) {
	var (
		cInPtr, cOutPtr   *C.rtaudio_stream_parameters_t
		cIn, cOut         C.rtaudio_stream_parameters_t
	)
	s.outputChannels, s.inputChannels = 0, 0
	if out != nil {
		s.outputChannels = out.Channels
		cOut.device_id = C.uint(out.DeviceID)
		cOut.num_channels = C.uint(out.Channels)
		cOut.first_channel = C.uint(out.FirstChannel)
		cOutPtr = &cOut
	}
	if in != nil {
		s.inputChannels = in.Channels
		cIn.device_id = C.uint(in.DeviceID)
		cIn.num_channels = C.uint(in.Channels)
		cIn.first_channel = C.uint(in.FirstChannel)
		cInPtr = &cIn
	}
	s.cb = cb
	bufferFrames := C.uint(frames)
	k := register(s)
	activeHandleMu.Lock()
	activeHandle[s] = k
	activeHandleMu.Unlock()

	C.cgoOpenStream(s.audio, cOutPtr, cInPtr, C.rtaudio_format_t(C.RTAUDIO_FORMAT_FLOAT32),
		C.uint(sampleRate), &bufferFrames, C.int(k), nil)
	if C.rtaudio_error(s.audio) != nil {
		unregister(k)
		return 0, errors.New(C.GoString(C.rtaudio_error(s.audio)))
	}
	return int(bufferFrames), nil
}

func (s *Stream) Start() error {
	C.rtaudio_start_stream(s.audio)
	if C.rtaudio_error(s.audio) != nil {
		return errors.New(C.GoString(C.rtaudio_error(s.audio)))
	}
	return nil
}

func (s *Stream) Stop() error {
	C.rtaudio_stop_stream(s.audio)
	if C.rtaudio_error(s.audio) != nil {
		return errors.New(C.GoString(C.rtaudio_error(s.audio)))
	}
	return nil
}

func (s *Stream) Close() {
	activeHandleMu.Lock()
	if k, ok := activeHandle[s]; ok {
		unregister(k)
		delete(activeHandle, s)
	}
	activeHandleMu.Unlock()
	C.rtaudio_close_stream(s.audio)
}

func (s *Stream) Destroy() { C.rtaudio_destroy(s.audio) }

func (s *Stream) IsRunning() bool { return C.rtaudio_is_stream_running(s.audio) != 0 }
