package wire

import (
	"encoding/binary"

	"camrx/internal/crc8"
)

// EncodeRecord serializes r into its 16-byte little-endian payload form.
func EncodeRecord(r Record) []byte {
	buf := make([]byte, PayloadSize)
	binary.LittleEndian.PutUint16(buf[0:2], r.X)
	binary.LittleEndian.PutUint16(buf[2:4], r.Y)
	binary.LittleEndian.PutUint16(buf[4:6], r.W)
	binary.LittleEndian.PutUint16(buf[6:8], r.H)
	binary.LittleEndian.PutUint64(buf[8:16], r.Timestamp)
	return buf
}

// EncodeFrame wraps r in a complete wire frame with a freshly computed
// CRC. The output is exactly what a conforming sender puts on the line.
func EncodeFrame(r Record) []byte {
	payload := EncodeRecord(r)
	buf := make([]byte, 0, FrameSize)
	buf = append(buf, SOF1, SOF2, BodySize)
	buf = append(buf, payload...)
	buf = append(buf, crc8.Checksum(payload))
	buf = append(buf, EOF1, EOF2)
	return buf
}
