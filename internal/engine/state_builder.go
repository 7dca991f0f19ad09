package engine

import (
	"async4x-server/internal/domain"
	"async4x-server/pkg/api"
)

// BuildStateFor создает персональный "снимок" партии для игрока-наблюдателя.
// logs - строки журнала, которые нужно доставить вместе со снимком.
func (g *Game) BuildStateFor(viewer domain.PlayerID, logs []api.LogEntry) *api.ServerResponse {
	board := g.BoardView(viewer)
	tiles := make([]api.HexTile, 0, len(board))
	for _, v := range board {
		tiles = append(tiles, toHexTile(v))
	}

	var orders []string
	for _, o := range g.ListOrders(viewer) {
		orders = append(orders, o.String())
	}

	return &api.ServerResponse{
		Type:         "UPDATE",
		GameID:       g.ID,
		Turn:         g.TurnNumber,
		Round:        g.RoundNumber,
		ActivePlayer: string(g.Active),
		Viewer:       string(viewer),
		Credits:      g.Credits[viewer],
		Grid: &api.GridMeta{
			QMin: g.Map.QMin, QMax: g.Map.QMax,
			RMin: g.Map.RMin, RMax: g.Map.RMax,
		},
		Map:    tiles,
		Orders: orders,
		Logs:   logs,
	}
}

// toHexTile конвертирует HexView в DTO для отправки клиенту.
func toHexTile(v HexView) api.HexTile {
	tile := api.HexTile{
		Q:        v.Hex.Q,
		R:        v.Hex.R,
		Blocked:  v.Blocked,
		Explored: v.Explored,
		Content:  v.Content,
	}
	if v.Colony != nil {
		tile.Colony = &api.ColonyView{
			Owner:     string(v.Colony.Owner),
			Level:     v.Colony.Level,
			Homeworld: v.Colony.Homeworld,
		}
	}
	for _, o := range v.Occupants {
		tile.Occupants = append(tile.Occupants, api.OccupantView{
			Token:    o.Token,
			Owner:    string(o.Owner),
			Own:      o.Own,
			Revealed: o.Revealed,
			Type:     o.TypeName,
			Count:    o.Count,
		})
	}
	return tile
}
