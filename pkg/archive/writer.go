package archive

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/golang/snappy"
)

// Write serializes a document to path. The layout is:
// [Magic:4][Version:2][DataLen:4][Checksum:4][snappy payload:N],
// all integers big-endian, checksum over the compressed payload.
func Write(path string, doc *Document) error {
	payload, err := doc.encode()
	if err != nil {
		return err
	}
	compressed := snappy.Encode(nil, payload)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.BigEndian, Magic); err != nil {
		return fmt.Errorf("failed to write archive header: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, Version); err != nil {
		return fmt.Errorf("failed to write archive header: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(compressed))); err != nil {
		return fmt.Errorf("failed to write archive header: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, crc32.ChecksumIEEE(compressed)); err != nil {
		return fmt.Errorf("failed to write archive header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("failed to write archive payload: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush archive: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync archive: %w", err)
	}
	return nil
}
