package wire

import (
	"encoding/binary"
	"io"
)

// littleEndian is a convenience variable since binary.LittleEndian is quite
// long.
var littleEndian = binary.LittleEndian

// writeUint32 writes a little-endian encoded uint32 to w.
func writeUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	littleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// readUint32 reads a little-endian encoded uint32 from r.
func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(buf[:]), nil
}

// writeUint64 writes a little-endian encoded uint64 to w.
func writeUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	littleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// readUint64 reads a little-endian encoded uint64 from r.
func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(buf[:]), nil
}

// writeVarInt writes val to w using a variable number of bytes depending on
// its value, following the same encoding used throughout the bitcoin wire
// protocol.
func writeVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err
	case val <= 0xffff:
		if _, err := w.Write([]byte{0xfd}); err != nil {
			return err
		}
		var buf [2]byte
		littleEndian.PutUint16(buf[:], uint16(val))
		_, err := w.Write(buf[:])
		return err
	case val <= 0xffffffff:
		if _, err := w.Write([]byte{0xfe}); err != nil {
			return err
		}
		return writeUint32(w, uint32(val))
	default:
		if _, err := w.Write([]byte{0xff}); err != nil {
			return err
		}
		return writeUint64(w, val)
	}
}

// readVarInt reads a variable length integer from r and returns it as a
// uint64, following the same encoding used throughout the bitcoin wire
// protocol.
func readVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}

	switch prefix[0] {
	case 0xff:
		return readUint64(r)
	case 0xfe:
		v, err := readUint32(r)
		return uint64(v), err
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return uint64(littleEndian.Uint16(buf[:])), nil
	default:
		return uint64(prefix[0]), nil
	}
}

// writeVarBytes writes a variable length byte slice to w prefixed with its
// length encoded as a variable length integer.
func writeVarBytes(w io.Writer, data []byte) error {
	if err := writeVarInt(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// readVarBytes reads a variable length byte slice from r that was previously
// written with writeVarBytes, refusing to allocate more than maxAllowed
// bytes for a single read.
func readVarBytes(r io.Reader, maxAllowed uint64) ([]byte, error) {
	count, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, io.ErrShortBuffer
	}
	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
