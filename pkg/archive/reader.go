package archive

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// headerSize is magic + version + data length + checksum.
const headerSize = 4 + 2 + 4 + 4

// Read opens an archive with memory-mapped I/O, verifies its framing
// and checksum, and decodes the document.
func Read(path string) (*Document, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	if reader.Len() < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, reader.Len())
	}
	header := make([]byte, headerSize)
	if _, err := reader.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("failed to read archive header: %w", err)
	}

	if magic := binary.BigEndian.Uint32(header[0:4]); magic != Magic {
		return nil, fmt.Errorf("%w: magic %x", ErrBadMagic, magic)
	}
	if version := binary.BigEndian.Uint16(header[4:6]); version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrBadVersion, version)
	}
	dataLen := binary.BigEndian.Uint32(header[6:10])
	checksum := binary.BigEndian.Uint32(header[10:14])

	if reader.Len() < headerSize+int(dataLen) {
		return nil, fmt.Errorf("%w: payload wants %d bytes, file has %d",
			ErrTruncated, dataLen, reader.Len()-headerSize)
	}
	compressed := make([]byte, dataLen)
	if _, err := reader.ReadAt(compressed, headerSize); err != nil {
		return nil, fmt.Errorf("failed to read archive payload: %w", err)
	}
	if actual := crc32.ChecksumIEEE(compressed); actual != checksum {
		return nil, fmt.Errorf("%w: want %08x, got %08x", ErrBadChecksum, checksum, actual)
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress archive: %w", err)
	}
	return decodeDocument(payload)
}
