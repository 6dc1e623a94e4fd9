package sample

import "math/bits"

// Byte-order helpers for native formats whose endianness differs from the
// host, applied once per sample per I/O direction. The big-endian ASIO
// sample formats are the motivating case; every other backend negotiates
// host-order float32.

// SwapBytes16 reverses the byte order of a 16-bit PCM sample.
func SwapBytes16(x uint16) uint16 { return bits.ReverseBytes16(x) }

// SwapBytes32 reverses the byte order of a 32-bit PCM sample, or of the
// raw bits of a 32-bit float sample.
func SwapBytes32(x uint32) uint32 { return bits.ReverseBytes32(x) }

// Swapped returns i with its byte order reversed.
func (i Int24) Swapped() Int24 { return Int24{i[2], i[1], i[0]} }
