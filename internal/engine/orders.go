package engine

import (
	"async4x-server/internal/domain"
	"fmt"
)

// OrderResult - итог дешёвой проверки приказа. Ошибки проверки - это значения, не error.
type OrderResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func okResult(format string, args ...interface{}) OrderResult {
	return OrderResult{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failResult(msg string) OrderResult {
	return OrderResult{OK: false, Message: msg}
}

// UnknownGroup - отказ для токена, который не назвал ни одну доступную игроку группу
func UnknownGroup() OrderResult {
	return failResult(msgNoSuchGroup)
}

const (
	msgNoSuchGroup = "No such group."
	msgNotYours    = "You don't control that group."
)

func (g *Game) queue(p domain.PlayerID) *domain.OrderQueue {
	q, ok := g.orders[p]
	if !ok {
		q = &domain.OrderQueue{}
		g.orders[p] = q
	}
	return q
}

// checkOwnership - группа существует и принадлежит активному игроку
func (g *Game) checkOwnership(id domain.GroupID) (*domain.UnitGroup, string) {
	grp := g.GetGroup(id)
	if grp == nil {
		return nil, msgNoSuchGroup
	}
	if grp.Owner != g.Active {
		return nil, msgNotYours
	}
	return grp, ""
}

// QueueMove ставит приказ на перемещение в очередь активного игрока.
// Состояние не меняется; путь и дальность проверяются при отправке.
func (g *Game) QueueMove(id domain.GroupID, dest domain.Hex) OrderResult {
	if _, msg := g.checkOwnership(id); msg != "" {
		return failResult(msg)
	}
	g.queue(g.Active).Push(domain.MoveOrder{GroupID: id, Dest: dest})
	return okResult("Queued: move %s to %s", id, dest)
}

// QueueColonize ставит приказ на колонизацию (исполняется в фазе действий)
func (g *Game) QueueColonize(id domain.GroupID) OrderResult {
	if _, msg := g.checkOwnership(id); msg != "" {
		return failResult(msg)
	}
	g.queue(g.Active).Push(domain.ColonizeOrder{GroupID: id})
	return okResult("Queued: colonize %s", id)
}

// QueueMine ставит приказ на добычу (исполняется в фазе действий)
func (g *Game) QueueMine(id domain.GroupID) OrderResult {
	if _, msg := g.checkOwnership(id); msg != "" {
		return failResult(msg)
	}
	g.queue(g.Active).Push(domain.MineOrder{GroupID: id})
	return okResult("Queued: mine %s", id)
}

// UndoLastOrder снимает последний приказ активного игрока
func (g *Game) UndoLastOrder() OrderResult {
	last, ok := g.queue(g.Active).PopLast()
	if !ok {
		return failResult("No orders to undo.")
	}
	return okResult("Undid: %s", last)
}

// ClearOrders очищает очередь активного игрока
func (g *Game) ClearOrders() OrderResult {
	q := g.queue(g.Active)
	n := q.Len()
	q.Clear()
	return okResult("Cleared %d order(s).", n)
}

// ListOrders возвращает копию очереди игрока
func (g *Game) ListOrders(p domain.PlayerID) []domain.Order {
	q, ok := g.orders[p]
	if !ok {
		return nil
	}
	return q.Orders()
}
