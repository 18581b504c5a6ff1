// Package section defines the fixed header of a block snapshot.
//
// A snapshot is a 32-byte header followed by the (optionally compressed) payload:
//
//	offset  size  field
//	0       2     options: bit 1 endianness, bit 2 span coding, bits 4-15 magic
//	              number (always little-endian)
//	2       1     format version
//	3       1     payload compression (format.CompressionType)
//	4       4     read count
//	8       4     site count
//	12      8     symbol count
//	20      4     uncompressed payload length
//	24      8     xxHash64 of the uncompressed payload
//
// All fields after the options word use the byte order selected by the endianness bit.
package section
