package domain

import "strings"

// CommandType - внутренний числовой идентификатор команды клиента
type CommandType uint8

const (
	CommandUnknown CommandType = iota
	CommandState
	CommandMove
	CommandColonize
	CommandMine
	CommandDeliver
	CommandUndo
	CommandClear
	CommandOrders
	CommandSubmit
	CommandPass
	CommandReveal
	CommandRevealAll
)

// Маппинг для конвертации JSON -> Domain
var commandStringToType = map[string]CommandType{
	"STATE":      CommandState,
	"MOVE":       CommandMove,
	"COLONIZE":   CommandColonize,
	"MINE":       CommandMine,
	"DELIVER":    CommandDeliver,
	"UNDO":       CommandUndo,
	"CLEAR":      CommandClear,
	"ORDERS":     CommandOrders,
	"SUBMIT":     CommandSubmit,
	"PASS":       CommandPass,
	"REVEAL":     CommandReveal,
	"REVEAL_ALL": CommandRevealAll,
}

// Маппинг для логов Domain -> String
var commandTypeToString = map[CommandType]string{
	CommandState:     "STATE",
	CommandMove:      "MOVE",
	CommandColonize:  "COLONIZE",
	CommandMine:      "MINE",
	CommandDeliver:   "DELIVER",
	CommandUndo:      "UNDO",
	CommandClear:     "CLEAR",
	CommandOrders:    "ORDERS",
	CommandSubmit:    "SUBMIT",
	CommandPass:      "PASS",
	CommandReveal:    "REVEAL",
	CommandRevealAll: "REVEAL_ALL",
}

// ParseCommand конвертирует строку из JSON в CommandType
func ParseCommand(s string) CommandType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := commandStringToType[upper]; ok {
		return val
	}
	return CommandUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (c CommandType) String() string {
	if val, ok := commandTypeToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// ReadOnly - команда не меняет состояние партии и доступна не только активному игроку
func (c CommandType) ReadOnly() bool {
	return c == CommandState || c == CommandOrders
}
