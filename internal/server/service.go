package server

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine"
	"async4x-server/internal/engine/handlers"
	"async4x-server/internal/engine/handlers/actions"
	"async4x-server/internal/engine/handlers/admin"
	"async4x-server/internal/infrastructure/storage"
	"async4x-server/internal/network"
	"async4x-server/pkg/api"
	"async4x-server/pkg/logger"
	"async4x-server/pkg/scenario"
	"async4x-server/pkg/utils"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrNotPlayer      = errors.New("viewer is not a player of this game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadPayload     = errors.New("bad payload")
)

// Options - настройки сервиса партий
type Options struct {
	Engine  engine.Config
	LogKeep int  // сколько строк журнала хранить в снапшоте
	Debug   bool // разрешить REVEAL и REVEAL_ALL
	Radius  int  // радиус карты для новых партий
}

// GameService - загрузка, исполнение команд и сохранение партий.
// Все изменения одной партии идут строго по очереди под её мьютексом.
type GameService struct {
	Store storage.Store
	Hub   *network.Broadcaster

	opts     Options
	handlers handlers.Registry

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	log *logrus.Entry
}

func NewService(store storage.Store, hub *network.Broadcaster, opts Options) *GameService {
	if opts.Radius == 0 {
		opts.Radius = scenario.DefaultRadius
	}
	s := &GameService{
		Store:    store,
		Hub:      hub,
		opts:     opts,
		handlers: handlers.NewRegistry(),
		locks:    make(map[string]*sync.Mutex),
		log:      logger.Component("service"),
	}

	actions.Register(s.handlers)
	if opts.Debug {
		admin.Register(s.handlers)
	}
	return s
}

// lockGame возвращает мьютекс партии, создавая его при первом обращении
func (s *GameService) lockGame(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// CreateGame генерирует партию и сохраняет её. seed 0 - сид из ID партии.
func (s *GameService) CreateGame(ctx context.Context, seed int64, radius int) (*engine.Game, error) {
	id := utils.GenerateID()
	if seed == 0 {
		seed = utils.StringToSeed(id)
	}
	if radius == 0 {
		radius = s.opts.Radius
	}

	g, err := scenario.Build(seed, radius, s.opts.Engine, engine.WithGameID(id))
	if err != nil {
		return nil, err
	}
	if err := s.Store.CreateGame(ctx, id, g.Snapshot()); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"game_id": id, "seed": seed, "radius": radius}).Info("Game created.")
	return g, nil
}

// ListGames - краткий список партий
func (s *GameService) ListGames(ctx context.Context) ([]api.GameSummary, error) {
	infos, err := s.Store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]api.GameSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, api.GameSummary{
			ID:           info.ID,
			Players:      info.Players,
			ActivePlayer: info.Active,
			Turn:         info.Turn,
			Round:        info.Round,
			UpdatedAt:    info.UpdatedAt.UnixMilli(),
		})
	}
	return out, nil
}

// load читает партию из хранилища. Вызывающий держит мьютекс партии.
func (s *GameService) load(ctx context.Context, id string) (*engine.Game, error) {
	snap, err := s.Store.LoadGame(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrGameNotFound)
		}
		return nil, err
	}
	return engine.FromSnapshot(snap, s.opts.Engine, engine.WithGameID(id))
}

// State - снимок партии глазами наблюдателя
func (s *GameService) State(ctx context.Context, gameID string, viewer domain.PlayerID) (*api.ServerResponse, error) {
	lock := s.lockGame(gameID)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !g.IsPlayer(viewer) {
		return nil, ErrNotPlayer
	}
	return g.BuildStateFor(viewer, nil), nil
}

// Apply исполняет одну команду: загрузка, проверка хода, хендлер, сохранение, рассылка.
func (s *GameService) Apply(ctx context.Context, gameID string, viewer domain.PlayerID, cmd api.ClientCommand) (*api.CommandResponse, error) {
	action := domain.ParseCommand(cmd.Action)
	if action == domain.CommandUnknown {
		return nil, fmt.Errorf("%q: %w", cmd.Action, ErrUnknownCommand)
	}

	lock := s.lockGame(gameID)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !g.IsPlayer(viewer) {
		return nil, ErrNotPlayer
	}
	if !action.ReadOnly() && g.Active != viewer {
		return nil, ErrNotYourTurn
	}

	res, err := s.handlers.Dispatch(handlers.Context{Game: g, Player: viewer}, domain.InternalCommand{
		Action:  action,
		Player:  viewer,
		Payload: cmd.Payload,
	})
	if err != nil {
		if errors.Is(err, handlers.ErrUnknownCommand) {
			return nil, fmt.Errorf("%s: %w", action, ErrUnknownCommand)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	entries := logEntries(gameID, res.Msgs, res.MsgType)
	if !action.ReadOnly() {
		if s.opts.LogKeep > 0 {
			g.TruncateLog(s.opts.LogKeep)
		}
		if err := s.Store.SaveGame(ctx, gameID, g.Snapshot()); err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
		s.Hub.Publish(gameID, func(v domain.PlayerID) api.ServerResponse {
			return *g.BuildStateFor(v, entries)
		})
	}

	s.log.WithFields(logrus.Fields{
		"game_id": gameID,
		"viewer":  viewer,
		"action":  action.String(),
		"ok":      res.OK,
	}).Debug("Command applied.")

	return &api.CommandResponse{
		OK:       res.OK,
		Messages: res.Msgs,
		State:    g.BuildStateFor(viewer, entries),
	}, nil
}

// logEntries превращает строки результата в записи для клиента
func logEntries(gameID string, msgs []string, logType string) []api.LogEntry {
	if len(msgs) == 0 {
		return nil
	}
	if logType == "" {
		logType = domain.LogTypeInfo
	}
	now := time.Now()
	out := make([]api.LogEntry, len(msgs))
	for i, m := range msgs {
		out[i] = api.LogEntry{
			ID:        fmt.Sprintf("%s_%d_%d", gameID, now.UnixNano(), i),
			Text:      m,
			Type:      logType,
			Timestamp: now.UnixMilli(),
		}
	}
	return out
}
