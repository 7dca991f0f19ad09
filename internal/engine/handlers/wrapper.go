package handlers

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine"
	"async4x-server/pkg/api"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload = errors.New("payload required")
	ErrBadPayload   = errors.New("invalid payload")
)

// WithPayload разбирает тело команды в T и проверяет его до вызова хендлера.
// Ошибки разбора и проверки возвращаются как error: до движка такая команда не доходит.
func WithPayload[T any](handler func(ctx Context, p T) (Result, error)) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		p, err := decodePayload[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, p)
	}
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var p T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, ErrEmptyPayload
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if v, ok := any(p).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return p, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
	}
	return p, nil
}

// WithGroup - команда над одной группой (COLONIZE, MINE, DELIVER).
// Хендлер получает уже разобранный ID группы.
func WithGroup(handler func(ctx Context, id domain.GroupID) Result) HandlerFunc {
	return WithPayload(func(ctx Context, p api.GroupPayload) (Result, error) {
		id, refusal, ok := ResolveGroup(ctx, p.Group)
		if !ok {
			return refusal, nil
		}
		return handler(ctx, id), nil
	})
}

// ResolveGroup переводит токен игрока (ID своей группы или маркер) в ID группы.
// Нераспознанный токен - отказ "No such group." в форме ответа очереди приказов,
// одинаковый для несуществующих и чужих скрытых групп.
func ResolveGroup(ctx Context, token string) (domain.GroupID, Result, bool) {
	id, ok := ctx.Game.ResolveToken(ctx.Player, token)
	if !ok {
		return "", FromOrderResult(engine.UnknownGroup()), false
	}
	return id, Result{}, true
}

// WithEmptyPayload - команды без данных (SUBMIT, UNDO). Тело, если пришло, игнорируется.
func WithEmptyPayload(handler func(ctx Context) (Result, error)) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
