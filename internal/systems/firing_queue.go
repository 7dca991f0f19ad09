package systems

import (
	"async4x-server/internal/domain"
	"container/heap"
)

// volleyKey - порядок залпа: буква инициативы, затем тактика по убыванию
type volleyKey struct {
	Rank    int
	Tactics int
}

func keyOf(g *domain.UnitGroup) volleyKey {
	return volleyKey{Rank: domain.InitiativeRank(g.Initiative()), Tactics: g.Tactics}
}

// FiringItem обертка для элемента очереди стрельбы
type FiringItem struct {
	Group *domain.UnitGroup
	Key   volleyKey
	Index int // Индекс в куче
}

// FiringQueue реализует heap.Interface: кто стреляет раньше в раунде.
// ID группы участвует только в упорядочивании внутри залпа, не в расчёте попаданий.
type FiringQueue []*FiringItem

func (fq FiringQueue) Len() int { return len(fq) }

func (fq FiringQueue) Less(i, j int) bool {
	a, b := fq[i], fq[j]
	if a.Key.Rank != b.Key.Rank {
		return a.Key.Rank < b.Key.Rank
	}
	if a.Key.Tactics != b.Key.Tactics {
		return a.Key.Tactics > b.Key.Tactics
	}
	return a.Group.ID < b.Group.ID
}

func (fq FiringQueue) Swap(i, j int) {
	fq[i], fq[j] = fq[j], fq[i]
	fq[i].Index = i
	fq[j].Index = j
}

func (fq *FiringQueue) Push(x interface{}) {
	n := len(*fq)
	item := x.(*FiringItem)
	item.Index = n
	*fq = append(*fq, item)
}

func (fq *FiringQueue) Pop() interface{} {
	old := *fq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*fq = old[0 : n-1]
	return item
}

// NewFiringQueue строит очередь из групп раунда.
func NewFiringQueue(groups []*domain.UnitGroup) *FiringQueue {
	fq := make(FiringQueue, 0, len(groups))
	for _, g := range groups {
		fq = append(fq, &FiringItem{Group: g, Key: keyOf(g), Index: len(fq)})
	}
	heap.Init(&fq)
	return &fq
}

// NextVolley снимает с очереди все живые группы со следующим ключом.
// Мёртвые группы выбрасываются. Пустой срез - раунд закончен.
func (fq *FiringQueue) NextVolley() []*domain.UnitGroup {
	for fq.Len() > 0 && !(*fq)[0].Group.IsAlive() {
		heap.Pop(fq)
	}
	if fq.Len() == 0 {
		return nil
	}

	key := (*fq)[0].Key
	var volley []*domain.UnitGroup
	for fq.Len() > 0 && (*fq)[0].Key == key {
		item := heap.Pop(fq).(*FiringItem)
		if item.Group.IsAlive() {
			volley = append(volley, item.Group)
		}
	}
	return volley
}
