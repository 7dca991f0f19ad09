package handlers

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownCommand - для команды не зарегистрирован хендлер
var ErrUnknownCommand = errors.New("unknown command")

// Context передает хендлеру партию и игрока.
// Передаем ссылку, чтобы хендлер мог менять состояние партии.
type Context struct {
	Game   *engine.Game
	Player domain.PlayerID // Тот, кто выполняет команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в сеть напрямую, он возвращает данные.
type Result struct {
	OK      bool
	Msgs    []string           // Строки для клиента
	MsgType string             // Тип записи лога (INFO, PHASE, ERROR)
	Report  *engine.TurnReport // Только для SUBMIT и PASS
}

// HandlerFunc - это контракт для любой команды (MOVE, SUBMIT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{OK: true}
}

// FromOrderResult переводит ответ очереди приказов в Result
func FromOrderResult(r engine.OrderResult) Result {
	res := Result{OK: r.OK, Msgs: []string{r.Message}, MsgType: domain.LogTypeInfo}
	if !r.OK {
		res.MsgType = domain.LogTypeError
	}
	return res
}

// Registry - таблица хендлеров по типу команды
type Registry map[domain.CommandType]HandlerFunc

func NewRegistry() Registry {
	return make(Registry)
}

// Dispatch находит хендлер и исполняет команду
func (r Registry) Dispatch(ctx Context, cmd domain.InternalCommand) (Result, error) {
	h, ok := r[cmd.Action]
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", cmd.Action, ErrUnknownCommand)
	}
	return h(ctx, cmd.Payload)
}
