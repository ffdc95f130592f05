package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

////
// De/Encoding functions
////

const (
	bit32Size = 4
	bit64Size = 8
)

// readBlob reads an OSC blob from the reader. Padding bytes are removed from
// the reader and not returned. An empty blob is returned as nil.
func readBlob(reader *bytes.Buffer) ([]byte, int, error) {
	if reader.Len() < bit32Size {
		return nil, 0, fmt.Errorf("readBlob: %w", io.ErrUnexpectedEOF)
	}

	// First, get the length
	blobLen := int(binary.BigEndian.Uint32(reader.Next(bit32Size)))
	if blobLen < 0 || blobLen > reader.Len() {
		return nil, 0, fmt.Errorf("readBlob: invalid blob length %d", blobLen)
	}

	n := bit32Size + blobLen
	var data []byte
	if blobLen > 0 {
		data = make([]byte, blobLen)
		copy(data, reader.Next(blobLen))
	}

	// Remove the padding bytes
	pad := padBytesNeeded(n)
	reader.Next(pad)

	return data, n + pad, nil
}

// writeBlob writes the data byte array as an OSC blob into buff. If the length
// of data isn't 32-bit aligned, padding bytes will be added.
func writeBlob(data []byte, buf *bytes.Buffer) (int, error) {
	if uint64(len(data)) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("writeBlob: blob too large: %d", len(data))
	}

	// Add the size of the blob
	var size [bit32Size]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(data)))
	buf.Write(size[:])
	n := bit32Size

	// Write the data
	n += len(data)
	buf.Write(data)

	pad := padBytesNeeded(n)
	buf.Write(padding[:pad])

	return n + pad, nil
}

// readPaddedString reads a padded string from the given reader. The padding
// bytes are removed from the reader. Returns the string and the number of
// bytes consumed.
func readPaddedString(reader *bytes.Buffer) (string, int, error) {
	pos := bytes.IndexByte(reader.Bytes(), 0)
	if pos == -1 {
		return "", 0, io.EOF
	}

	str := string(reader.Next(pos))
	reader.Next(1)
	n := pos + 1

	pad := padBytesNeeded(n)
	if reader.Len() < pad {
		return "", 0, fmt.Errorf("readPaddedString: %w", io.ErrUnexpectedEOF)
	}
	reader.Next(pad)

	return str, n + pad, nil
}

// writePaddedString writes a string with padding bytes to the buffer.
// Returns the number of written bytes.
func writePaddedString(str string, buf *bytes.Buffer) int {
	// Write the string to the buffer
	buf.WriteString(str)
	buf.WriteByte(0)
	n := len(str) + 1

	pad := padBytesNeeded(n)
	buf.Write(padding[:pad])

	return n + pad
}

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
