package sqlite

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// serializeVector converts a float32 slice to a LittleEndian byte slice
// for BLOB storage.
func serializeVector(vec []float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, vec); err != nil {
		return nil, fmt.Errorf("failed to serialize vector: %w", err)
	}
	return buf.Bytes(), nil
}

// deserializeVector converts a stored BLOB of the given dimension back to
// a float32 slice.
func deserializeVector(blob []byte, dim int) ([]float32, error) {
	if len(blob) != dim*4 {
		return nil, fmt.Errorf("vector blob has %d bytes, want %d", len(blob), dim*4)
	}
	vec := make([]float32, dim)
	if err := binary.Read(bytes.NewReader(blob), binary.LittleEndian, vec); err != nil {
		return nil, fmt.Errorf("failed to deserialize vector: %w", err)
	}
	return vec, nil
}
