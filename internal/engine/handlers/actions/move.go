package actions

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine/handlers"
	"async4x-server/pkg/api"
)

// HandleMove ставит перемещение в очередь. Путь проверяется при отправке.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	id, refusal, ok := handlers.ResolveGroup(ctx, p.Group)
	if !ok {
		return refusal, nil
	}
	return handlers.FromOrderResult(ctx.Game.QueueMove(id, domain.Hex{Q: p.Q, R: p.R})), nil
}
