package level

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	magicSize       = 4
	chunkHeaderSize = magicSize + 4
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func writeChunk(w io.Writer, magic string, data []byte) error {
	var header [chunkHeaderSize]byte
	copy(header[:magicSize], magic)
	binary.LittleEndian.PutUint32(header[magicSize:], uint32(len(data)))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// readChunk reads one chunk and checks it against the identifier and
// payload length expected for the slot.
func readChunk(r io.Reader, magic string, size int) ([]byte, error) {
	var header [chunkHeaderSize]byte
	if err := readFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("level: chunk %s header: %w", magic, err)
	}

	if got := string(header[:magicSize]); got != magic {
		return nil, fmt.Errorf("%w: slot %s holds %q", ErrChunkMagicMismatch, magic, got)
	}

	if got := binary.LittleEndian.Uint32(header[magicSize:]); got != uint32(size) {
		return nil, fmt.Errorf("%w: chunk %s is %d bytes, want %d", ErrChunkSizeMismatch, magic, got, size)
	}

	data := make([]byte, size)
	if err := readFull(r, data); err != nil {
		return nil, fmt.Errorf("level: chunk %s payload: %w", magic, err)
	}

	return data, nil
}
