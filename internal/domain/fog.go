package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MarkerPrefix - префикс анонимных маркеров ("M1", "M2", ...)
const MarkerPrefix = "M"

var ErrCorruptFog = errors.New("corrupt fog tables")

// viewerFog - состояние тумана войны для одного наблюдателя
type viewerFog struct {
	revealed      map[GroupID]struct{}
	markerByGroup map[GroupID]string
	groupByMarker map[string]GroupID // ключ - маркер в верхнем регистре
	nextMarker    int
}

func newViewerFog() *viewerFog {
	return &viewerFog{
		revealed:      make(map[GroupID]struct{}),
		markerByGroup: make(map[GroupID]string),
		groupByMarker: make(map[string]GroupID),
		nextMarker:    1,
	}
}

// FogRegistry - таблица видимости вражеских групп по наблюдателям.
// Ничего не знает о бое и движении: только поиск и выдача маркеров.
type FogRegistry struct {
	viewers map[PlayerID]*viewerFog
}

func NewFogRegistry() *FogRegistry {
	return &FogRegistry{viewers: make(map[PlayerID]*viewerFog)}
}

func (f *FogRegistry) viewer(v PlayerID) *viewerFog {
	vf, ok := f.viewers[v]
	if !ok {
		vf = newViewerFog()
		f.viewers[v] = vf
	}
	return vf
}

// IsRevealed - видел ли наблюдатель эту группу открыто
func (f *FogRegistry) IsRevealed(viewer PlayerID, group GroupID) bool {
	vf, ok := f.viewers[viewer]
	if !ok {
		return false
	}
	_, ok = vf.revealed[group]
	return ok
}

// Reveal открывает группу наблюдателю. Идемпотентно.
// Маркер группы для этого наблюдателя выводится из оборота и больше не выдаётся.
func (f *FogRegistry) Reveal(viewer PlayerID, group GroupID) {
	vf := f.viewer(viewer)
	vf.revealed[group] = struct{}{}
	if marker, ok := vf.markerByGroup[group]; ok {
		delete(vf.markerByGroup, group)
		delete(vf.groupByMarker, strings.ToUpper(marker))
	}
}

// MarkerFor возвращает маркер группы для наблюдателя, выделяя новый при первом обращении.
func (f *FogRegistry) MarkerFor(viewer PlayerID, group GroupID) string {
	vf := f.viewer(viewer)
	if marker, ok := vf.markerByGroup[group]; ok {
		return marker
	}
	marker := fmt.Sprintf("%s%d", MarkerPrefix, vf.nextMarker)
	vf.nextMarker++
	vf.markerByGroup[group] = marker
	vf.groupByMarker[strings.ToUpper(marker)] = group
	return marker
}

// Marker - уже выданный маркер группы, без выделения нового
func (f *FogRegistry) Marker(viewer PlayerID, group GroupID) (string, bool) {
	vf, ok := f.viewers[viewer]
	if !ok {
		return "", false
	}
	m, ok := vf.markerByGroup[group]
	return m, ok
}

// ResolveToken переводит ввод игрока в ID группы.
// Сначала литеральный ID (own проверяет, что группа принадлежит наблюдателю),
// затем маркер без учёта регистра.
func (f *FogRegistry) ResolveToken(viewer PlayerID, token string, own func(GroupID) bool) (GroupID, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	if own != nil && own(GroupID(token)) {
		return GroupID(token), true
	}
	vf, ok := f.viewers[viewer]
	if !ok {
		return "", false
	}
	group, ok := vf.groupByMarker[strings.ToUpper(token)]
	return group, ok
}

// Forget убирает уничтоженную группу из живых маркеров всех наблюдателей.
// Множество revealed не трогаем: оно только растёт.
func (f *FogRegistry) Forget(group GroupID) {
	for _, vf := range f.viewers {
		if marker, ok := vf.markerByGroup[group]; ok {
			delete(vf.markerByGroup, group)
			delete(vf.groupByMarker, strings.ToUpper(marker))
		}
	}
}

// Viewers - наблюдатели с непустым состоянием, отсортированные
func (f *FogRegistry) Viewers() []PlayerID {
	out := make([]PlayerID, 0, len(f.viewers))
	for v := range f.viewers {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- Снапшот ---

// ViewerFogState - сериализуемое состояние одного наблюдателя
type ViewerFogState struct {
	Revealed   []GroupID          `json:"revealed"`
	Markers    map[GroupID]string `json:"markers"`
	NextMarker int                `json:"next_marker_index"`
}

// Export возвращает копию таблиц для снапшота.
func (f *FogRegistry) Export() map[PlayerID]ViewerFogState {
	out := make(map[PlayerID]ViewerFogState, len(f.viewers))
	for v, vf := range f.viewers {
		state := ViewerFogState{
			Revealed:   make([]GroupID, 0, len(vf.revealed)),
			Markers:    make(map[GroupID]string, len(vf.markerByGroup)),
			NextMarker: vf.nextMarker,
		}
		for g := range vf.revealed {
			state.Revealed = append(state.Revealed, g)
		}
		sort.Slice(state.Revealed, func(i, j int) bool { return state.Revealed[i] < state.Revealed[j] })
		for g, m := range vf.markerByGroup {
			state.Markers[g] = m
		}
		out[v] = state
	}
	return out
}

// ImportFog восстанавливает реестр из снапшота и проверяет его согласованность.
func ImportFog(states map[PlayerID]ViewerFogState) (*FogRegistry, error) {
	f := NewFogRegistry()
	for v, state := range states {
		vf := newViewerFog()
		if state.NextMarker > 0 {
			vf.nextMarker = state.NextMarker
		}
		for _, g := range state.Revealed {
			vf.revealed[g] = struct{}{}
		}
		for g, m := range state.Markers {
			key := strings.ToUpper(m)
			if other, dup := vf.groupByMarker[key]; dup {
				return nil, fmt.Errorf("%w: viewer %s marker %s bound to %s and %s", ErrCorruptFog, v, m, other, g)
			}
			vf.markerByGroup[g] = m
			vf.groupByMarker[key] = g
		}
		f.viewers[v] = vf
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate проверяет инварианты таблиц:
// прямое и обратное отображения совпадают, у раскрытой группы нет живого маркера,
// номер каждого маркера меньше счётчика.
func (f *FogRegistry) Validate() error {
	for v, vf := range f.viewers {
		if vf.nextMarker < 1 {
			return fmt.Errorf("%w: viewer %s next marker %d", ErrCorruptFog, v, vf.nextMarker)
		}
		if len(vf.markerByGroup) != len(vf.groupByMarker) {
			return fmt.Errorf("%w: viewer %s marker maps differ in size", ErrCorruptFog, v)
		}
		for g, m := range vf.markerByGroup {
			if back, ok := vf.groupByMarker[strings.ToUpper(m)]; !ok || back != g {
				return fmt.Errorf("%w: viewer %s marker %s does not map back to %s", ErrCorruptFog, v, m, g)
			}
			if _, revealed := vf.revealed[g]; revealed {
				return fmt.Errorf("%w: viewer %s revealed group %s still holds marker %s", ErrCorruptFog, v, g, m)
			}
			n, err := markerIndex(m)
			if err != nil {
				return fmt.Errorf("%w: viewer %s: %v", ErrCorruptFog, v, err)
			}
			if n >= vf.nextMarker {
				return fmt.Errorf("%w: viewer %s marker %s not below counter %d", ErrCorruptFog, v, m, vf.nextMarker)
			}
		}
	}
	return nil
}

func markerIndex(m string) (int, error) {
	if !strings.HasPrefix(strings.ToUpper(m), MarkerPrefix) {
		return 0, fmt.Errorf("bad marker %q", m)
	}
	var n int
	if _, err := fmt.Sscanf(m[len(MarkerPrefix):], "%d", &n); err != nil || n < 1 {
		return 0, fmt.Errorf("bad marker %q", m)
	}
	return n, nil
}
