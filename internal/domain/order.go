package domain

import (
	"fmt"
	"strings"
)

// OrderKind - Тип приказа в очереди игрока
type OrderKind uint8

const (
	OrderUnknown OrderKind = iota
	OrderMove
	OrderColonize
	OrderMine
)

// Маппинг для конвертации снапшота -> Domain
var orderStringToKind = map[string]OrderKind{
	"move":     OrderMove,
	"colonize": OrderColonize,
	"mine":     OrderMine,
}

// Маппинг Domain -> String (снапшоты и логи)
var orderKindToString = map[OrderKind]string{
	OrderMove:     "move",
	OrderColonize: "colonize",
	OrderMine:     "mine",
}

// ParseOrderKind конвертирует тег приказа в OrderKind
func ParseOrderKind(s string) OrderKind {
	if val, ok := orderStringToKind[strings.ToLower(s)]; ok {
		return val
	}
	return OrderUnknown
}

func (k OrderKind) String() string {
	if val, ok := orderKindToString[k]; ok {
		return val
	}
	return "unknown"
}

// Order - закрытый набор приказов. Реализуется только типами этого пакета.
// После постановки в очередь не изменяется.
type Order interface {
	Kind() OrderKind
	Group() GroupID
	String() string
	isOrder()
}

// MoveOrder - переместить группу в гекс назначения
type MoveOrder struct {
	GroupID GroupID
	Dest    Hex
}

func (o MoveOrder) Kind() OrderKind { return OrderMove }
func (o MoveOrder) Group() GroupID  { return o.GroupID }
func (o MoveOrder) isOrder()        {}

func (o MoveOrder) String() string {
	return fmt.Sprintf("move %s %d %d", o.GroupID, o.Dest.Q, o.Dest.R)
}

// ColonizeOrder - основать колонию силами группы
type ColonizeOrder struct {
	GroupID GroupID
}

func (o ColonizeOrder) Kind() OrderKind { return OrderColonize }
func (o ColonizeOrder) Group() GroupID  { return o.GroupID }
func (o ColonizeOrder) isOrder()        {}

func (o ColonizeOrder) String() string {
	return fmt.Sprintf("colonize %s", o.GroupID)
}

// MineOrder - загрузить минералы в текущем гексе
type MineOrder struct {
	GroupID GroupID
}

func (o MineOrder) Kind() OrderKind { return OrderMine }
func (o MineOrder) Group() GroupID  { return o.GroupID }
func (o MineOrder) isOrder()        {}

func (o MineOrder) String() string {
	return fmt.Sprintf("mine %s", o.GroupID)
}

// OrderQueue - очередь приказов одного игрока: добавить, снять последний, очистить.
type OrderQueue struct {
	orders []Order
}

func (q *OrderQueue) Push(o Order) {
	q.orders = append(q.orders, o)
}

// PopLast снимает последний приказ. false, если очередь пуста.
func (q *OrderQueue) PopLast() (Order, bool) {
	if len(q.orders) == 0 {
		return nil, false
	}
	last := q.orders[len(q.orders)-1]
	q.orders = q.orders[:len(q.orders)-1]
	return last, true
}

func (q *OrderQueue) Clear() {
	q.orders = nil
}

func (q *OrderQueue) Len() int {
	return len(q.orders)
}

// Orders возвращает копию очереди в порядке постановки.
func (q *OrderQueue) Orders() []Order {
	out := make([]Order, len(q.orders))
	copy(out, q.orders)
	return out
}
