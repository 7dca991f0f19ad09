package admin

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine/handlers"
	"async4x-server/pkg/api"
)

// HandleReveal открывает гекс без эффектов исследования
func HandleReveal(ctx handlers.Context, p api.HexPayload) (handlers.Result, error) {
	msgs := ctx.Game.DebugRevealHex(domain.Hex{Q: p.Q, R: p.R})
	return handlers.Result{OK: true, Msgs: msgs, MsgType: domain.LogTypeInfo}, nil
}

// HandleRevealAll открывает всю карту
func HandleRevealAll(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{OK: true, Msgs: ctx.Game.DebugRevealAll(), MsgType: domain.LogTypeInfo}, nil
}

// Register добавляет служебные команды. Вызывается только при включенном debug.
func Register(r handlers.Registry) {
	r[domain.CommandReveal] = handlers.WithPayload(HandleReveal)
	r[domain.CommandRevealAll] = handlers.WithEmptyPayload(HandleRevealAll)
}
