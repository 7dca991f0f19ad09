package domain

import "encoding/json"

// InternalCommand - команда клиента после разбора.
// Использует CommandType вместо string.
type InternalCommand struct {
	Action  CommandType
	Player  PlayerID        // от чьего имени
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
