package actions

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine"
	"async4x-server/internal/engine/handlers"
)

// HandleState ничего не меняет: клиент просит свежий снимок
func HandleState(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}

func HandleSubmit(ctx handlers.Context) (handlers.Result, error) {
	return turnResult(ctx.Game.Submit()), nil
}

func HandlePass(ctx handlers.Context) (handlers.Result, error) {
	return turnResult(ctx.Game.Pass()), nil
}

func turnResult(report engine.TurnReport) handlers.Result {
	return handlers.Result{
		OK:      true,
		Msgs:    report.Events,
		MsgType: domain.LogTypePhase,
		Report:  &report,
	}
}
