package server

import (
	"async4x-server/internal/domain"
	"async4x-server/pkg/api"
	"async4x-server/pkg/logger"
	"async4x-server/pkg/utils"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	ID      string
	Service *GameService
	Conn    *websocket.Conn
	Send    chan api.ServerResponse
	Limiter *rate.Limiter

	GameID string
	Viewer domain.PlayerID

	// done закрывается, когда завершается любой из пампов
	done     chan struct{}
	doneOnce sync.Once

	log *logrus.Entry
}

func NewClient(service *GameService, conn *websocket.Conn, limiter *rate.Limiter) *Client {
	id := utils.GenerateID()
	return &Client{
		ID:      id,
		Service: service,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 256),
		Limiter: limiter,
		done:    make(chan struct{}),
		log:     logger.Component("ws").WithField("client_id", id),
	}
}

func (c *Client) stop() {
	c.doneOnce.Do(func() { close(c.done) })
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Service, conn, rate.NewLimiter(s.RateLimit, s.RateBurst))
	go client.run()
}

// run: рукопожатие, затем запуск пампов
func (c *Client) run() {
	if !c.handshake() {
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		return
	}

	// Пересылка обновлений из Hub в writePump. Единственный писатель в c.Send.
	updates := c.Service.Hub.Register(c.ID, c.GameID, c.Viewer)
	go c.forward(updates)
	go c.writePump()

	// Первая отрисовка
	if st, err := c.Service.State(context.Background(), c.GameID, c.Viewer); err == nil {
		c.Service.Hub.SendTo(c.ID, *st)
	}

	c.readPump()
}

// forward пересылает обновления из Hub в writePump. Единственный писатель в c.Send.
// Завершается, когда Hub закрыл канал или один из пампов остановился.
func (c *Client) forward(updates <-chan api.ServerResponse) {
	for {
		select {
		case msg, ok := <-updates:
			if !ok {
				close(c.Send)
				return
			}
			select {
			case c.Send <- msg:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

// handshake: первое сообщение {"gameId","viewer"}. Пишем напрямую, writePump еще не запущен.
func (c *Client) handshake() bool {
	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}

	var login api.ClientCommand
	if err := c.Conn.ReadJSON(&login); err != nil {
		c.log.Warn("Handshake failed")
		return false
	}

	c.GameID = login.GameID
	c.Viewer = domain.PlayerID(login.Viewer)
	if _, err := c.Service.State(context.Background(), c.GameID, c.Viewer); err != nil {
		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.Conn.WriteJSON(errorResponse(err))
		c.log.WithError(err).Warn("Handshake rejected")
		return false
	}

	c.log = c.log.WithFields(logrus.Fields{"game_id": c.GameID, "viewer": c.Viewer})
	c.log.Info("Client logged in")
	return true
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.stop()
		c.Service.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS Error")
			}
			return
		}

		if !c.Limiter.Allow() {
			c.Service.Hub.SendTo(c.ID, api.ServerResponse{Type: "ERROR", Error: "Rate limit exceeded"})
			continue
		}

		resp, err := c.Service.Apply(context.Background(), c.GameID, c.Viewer, cmd)
		if err != nil {
			c.Service.Hub.SendTo(c.ID, errorResponse(err))
			continue
		}
		// Изменения уже разосланы через Hub; чтение отвечаем лично
		if domain.ParseCommand(cmd.Action).ReadOnly() && resp.State != nil {
			c.Service.Hub.SendTo(c.ID, *resp.State)
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		c.stop()
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

func errorResponse(err error) api.ServerResponse {
	msg := err.Error()
	if errors.Is(err, ErrNotYourTurn) {
		msg = "Not your turn"
	}
	return api.ServerResponse{Type: "ERROR", Error: msg}
}
