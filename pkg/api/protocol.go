package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой "снимок" партии глазами конкретного игрока.
// Отправляется после каждой команды, меняющей состояние партии.
type ServerResponse struct {
	// Type тип сообщения: UPDATE, REPORT или ERROR.
	Type string `json:"type"`

	GameID string `json:"gameId,omitempty"`

	// Turn и Round - счетчики отправок и полных кругов
	Turn  int `json:"turn"`
	Round int `json:"round"`

	// ActivePlayer игрок, чей сейчас ход.
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ С Viewer. Только активный игрок отдает приказы.
	ActivePlayer string `json:"activePlayer"`

	// Viewer игрок, для которого собран снимок.
	Viewer string `json:"viewer,omitempty"`

	Credits int `json:"credits"`

	// Grid границы карты в осевых координатах.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map все гексы карты с учетом тумана войны.
	Map []HexTile `json:"map,omitempty"`

	// Orders очередь приказов наблюдателя
	Orders []string `json:"orders,omitempty"`

	// Logs новые строки журнала партии.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст ошибки для Type == ERROR
	Error string `json:"error,omitempty"`
}

// GridMeta содержит границы карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	QMin int `json:"qMin"`
	QMax int `json:"qMax"`
	RMin int `json:"rMin"`
	RMax int `json:"rMax"`
}

// HexTile это DTO для одного гекса карты.
type HexTile struct {
	Q int `json:"q"`
	R int `json:"r"`

	// Blocked true, если гекс непроходим (астероиды, сверхновая).
	Blocked bool `json:"blocked"`

	// Explored true, если гекс исследован. Содержимое и колония отдаются только для исследованных.
	Explored bool `json:"explored"`

	Content string      `json:"content,omitempty"`
	Colony  *ColonyView `json:"colony,omitempty"`

	Occupants []OccupantView `json:"occupants,omitempty"`
}

// ColonyView это DTO колонии.
type ColonyView struct {
	Owner     string `json:"owner"`
	Level     int    `json:"level"`
	Homeworld bool   `json:"homeworld,omitempty"`
}

// OccupantView это DTO группы кораблей.
// Скрытая вражеская группа приходит только с маркером в Token.
type OccupantView struct {
	Token    string `json:"token"`
	Owner    string `json:"owner,omitempty"`
	Own      bool   `json:"own,omitempty"`
	Revealed bool   `json:"revealed"`
	Type     string `json:"type,omitempty"`
	Count    int    `json:"count,omitempty"`
}

// LogEntry представляет одну запись в журнале партии.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, PHASE, COMBAT, EXPLORE, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// GameSummary - строка списка партий
type GameSummary struct {
	ID           string   `json:"id"`
	Players      []string `json:"players"`
	ActivePlayer string   `json:"activePlayer"`
	Turn         int      `json:"turn"`
	Round        int      `json:"round"`
	UpdatedAt    int64    `json:"updatedAt"`
}

// CommandResponse - ответ HTTP на одну команду
type CommandResponse struct {
	OK       bool            `json:"ok"`
	Messages []string        `json:"messages,omitempty"`
	State    *ServerResponse `json:"state,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// GameID и Viewer обязательны только для первого сообщения по websocket
	// и для HTTP-команд.
	GameID string `json:"gameId,omitempty"`
	Viewer string `json:"viewer,omitempty"`

	// Action название команды (MOVE, SUBMIT, ...).
	Action string `json:"action"`

	// Payload JSON-объект с данными для команды. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// MovePayload - приказ на перемещение группы в гекс (q, r).
type MovePayload struct {
	Group string `json:"group"` // ID группы или маркер
	Q     int    `json:"q"`
	R     int    `json:"r"`
}

// GroupPayload используется для команд над одной группой (COLONIZE, MINE, DELIVER).
type GroupPayload struct {
	Group string `json:"group"`
}

// HexPayload используется для команд, нацеленных на гекс (REVEAL).
type HexPayload struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// CreateGamePayload - тело POST /games
type CreateGamePayload struct {
	Seed   int64 `json:"seed,omitempty"`
	Radius int   `json:"radius,omitempty"`
}
