package engine

import (
	"async4x-server/internal/domain"
	"errors"
)

var (
	ErrNoPlayers         = errors.New("game needs at least one player")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnsupportedSchema = errors.New("unsupported snapshot schema version")
	ErrCorruptSnapshot   = errors.New("corrupt snapshot")
	ErrDuplicateGroup    = errors.New("duplicate group id")
)

// ErrCorruptFog - таблицы тумана войны в снапшоте противоречат друг другу
var ErrCorruptFog = domain.ErrCorruptFog
