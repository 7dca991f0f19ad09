package actions

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine/handlers"
)

// Register добавляет в реестр все игровые команды
func Register(r handlers.Registry) {
	r[domain.CommandState] = handlers.WithEmptyPayload(HandleState)
	r[domain.CommandMove] = handlers.WithPayload(HandleMove)
	r[domain.CommandColonize] = handlers.WithGroup(HandleColonize)
	r[domain.CommandMine] = handlers.WithGroup(HandleMine)
	r[domain.CommandDeliver] = handlers.WithGroup(HandleDeliver)
	r[domain.CommandUndo] = handlers.WithEmptyPayload(HandleUndo)
	r[domain.CommandClear] = handlers.WithEmptyPayload(HandleClear)
	r[domain.CommandOrders] = handlers.WithEmptyPayload(HandleOrders)
	r[domain.CommandSubmit] = handlers.WithEmptyPayload(HandleSubmit)
	r[domain.CommandPass] = handlers.WithEmptyPayload(HandlePass)
}
