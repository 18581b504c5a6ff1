// Package endian selects the byte order of binary block images.
//
// Snapshots and device transfer records are written through an Engine, which combines the
// read/write and append halves of encoding/binary so encoders can grow their buffers in place:
//
//	engine := endian.Little()
//	buf = engine.AppendUint32(buf, uint32(read.First))
//
// Engines are stateless and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine is a byte order usable both for fixed-offset access and for appending.
// binary.LittleEndian and binary.BigEndian satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the byte order of the host.
func Native() Engine {
	var probe uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return Native() == binary.LittleEndian
}

// IsNative reports whether engine matches the host byte order, in which case packed words
// can be handed to a device without swapping.
func IsNative(engine Engine) bool {
	return engine == Native()
}

// Little returns the little-endian engine, the default for every binary image.
func Little() Engine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() Engine {
	return binary.BigEndian
}

// IsBig reports whether engine writes big-endian.
func IsBig(engine Engine) bool {
	return engine == binary.BigEndian
}
