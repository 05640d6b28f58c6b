package wire

import "encoding/binary"

// DecodeRecord reinterprets a 16-byte payload as a Record: four
// little-endian uint16 fields then one little-endian uint64, no
// padding. The synchronizer's length check guarantees the size, so the
// only failure mode is a caller handing in the wrong slice.
func DecodeRecord(payload []byte) (Record, error) {
	if len(payload) != PayloadSize {
		return Record{}, ErrBadPayloadLen
	}
	return Record{
		X:         binary.LittleEndian.Uint16(payload[0:2]),
		Y:         binary.LittleEndian.Uint16(payload[2:4]),
		W:         binary.LittleEndian.Uint16(payload[4:6]),
		H:         binary.LittleEndian.Uint16(payload[6:8]),
		Timestamp: binary.LittleEndian.Uint64(payload[8:16]),
	}, nil
}
