package utils

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID партии
func GenerateID() string {
	return uuid.NewString()
}

// StringToSeed превращает строку в детерминированный сид (FNV-1a).
// Одна и та же строка всегда дает одну и ту же карту.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
