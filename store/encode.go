package store

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

// SerializeMileageFile encodes a parsed MileageFile to bytes using gob
// encoding, for blob storage.
func SerializeMileageFile(f *mileage.MileageFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode mileage file %s: %w", f.ELR, err)
	}
	return buf.Bytes(), nil
}

// DeserializeMileageFile decodes a MileageFile previously encoded with
// SerializeMileageFile.
func DeserializeMileageFile(data []byte) (*mileage.MileageFile, error) {
	var f mileage.MileageFile
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode mileage file: %w", err)
	}
	return &f, nil
}
