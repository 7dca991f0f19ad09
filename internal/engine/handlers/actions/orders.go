package actions

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine/handlers"
	"strings"
)

func HandleColonize(ctx handlers.Context, id domain.GroupID) handlers.Result {
	return handlers.FromOrderResult(ctx.Game.QueueColonize(id))
}

func HandleMine(ctx handlers.Context, id domain.GroupID) handlers.Result {
	return handlers.FromOrderResult(ctx.Game.QueueMine(id))
}

// HandleDeliver сдает груз сразу, без очереди
func HandleDeliver(ctx handlers.Context, id domain.GroupID) handlers.Result {
	msgs := ctx.Game.ManualDeliver(id)
	ok := len(msgs) > 0 && strings.Contains(msgs[0], " delivered ")
	return handlers.Result{OK: ok, Msgs: msgs, MsgType: domain.LogTypeInfo}
}

func HandleUndo(ctx handlers.Context) (handlers.Result, error) {
	return handlers.FromOrderResult(ctx.Game.UndoLastOrder()), nil
}

func HandleClear(ctx handlers.Context) (handlers.Result, error) {
	return handlers.FromOrderResult(ctx.Game.ClearOrders()), nil
}

// HandleOrders перечисляет очередь игрока, по строке на приказ
func HandleOrders(ctx handlers.Context) (handlers.Result, error) {
	orders := ctx.Game.ListOrders(ctx.Player)
	if len(orders) == 0 {
		return handlers.Result{OK: true, Msgs: []string{"No orders queued."}, MsgType: domain.LogTypeInfo}, nil
	}
	msgs := make([]string, len(orders))
	for i, o := range orders {
		msgs[i] = o.String()
	}
	return handlers.Result{OK: true, Msgs: msgs, MsgType: domain.LogTypeInfo}, nil
}
