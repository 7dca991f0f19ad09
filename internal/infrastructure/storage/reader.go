package storage

import (
	"async4x-server/internal/engine"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

var (
	ErrInvalidMagic       = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported envelope version")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// Decode распаковывает снапшот и проверяет целостность
func Decode(data []byte) (*engine.Snapshot, error) {
	raw, err := readEnvelope(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var s engine.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &s, nil
}

func readEnvelope(r io.Reader) ([]byte, error) {
	// 1. Читаем заголовок целиком
	var header EnvelopeHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}

	// 2. Читаем сжатый JSON
	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	raw := make([]byte, 0, header.RawLen)
	buf := bytes.NewBuffer(raw)
	if _, err := io.Copy(buf, lz4.NewReader(bytes.NewReader(payload))); err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	raw = buf.Bytes()

	if uint32(len(raw)) != header.RawLen || blake3.Sum256(raw) != header.Checksum {
		return nil, ErrChecksumMismatch
	}
	return raw, nil
}
