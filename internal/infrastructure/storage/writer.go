package storage

import (
	"async4x-server/internal/engine"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

const (
	MagicHeader string = `A4XS` // 4 байта
	Version1    uint32 = 1
)

// EnvelopeHeader - точное представление заголовка снапшота в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type EnvelopeHeader struct {
	Magic      [4]byte  // 4 байта
	Version    uint32   // 4 байта
	Checksum   [32]byte // blake3 от несжатого JSON
	RawLen     uint32   // длина JSON
	PayloadLen uint32   // длина lz4-кадра
}

// Encode упаковывает снапшот: заголовок + lz4(JSON)
func Encode(s *engine.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var payload bytes.Buffer
	zw := lz4.NewWriter(&payload)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}

	header := EnvelopeHeader{
		Version:    Version1,
		Checksum:   blake3.Sum256(raw),
		RawLen:     uint32(len(raw)),
		PayloadLen: uint32(payload.Len()),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	var out bytes.Buffer
	if err := writeEnvelope(&out, &header, payload.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeEnvelope(w io.Writer, header *EnvelopeHeader, payload []byte) error {
	// ПИШЕМ СТРУКТУРУ ЦЕЛИКОМ
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
