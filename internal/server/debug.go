package server

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine"
	"async4x-server/internal/infrastructure/storage"
	"async4x-server/pkg/api"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// DebugHandler предоставляет доступ к внутреннему состоянию партий
type DebugHandler struct {
	Service *GameService
}

func NewDebugHandler(s *GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/games/{id}/log", h.handleLog)
	mux.HandleFunc("GET /debug/games/{id}/snapshot", h.handleSnapshot)
	mux.HandleFunc("GET /debug/games/{id}/snapshots", h.handleListSnapshots)
	mux.HandleFunc("POST /debug/games/{id}/snapshots/{name}", h.handleSaveSnapshot)
	mux.HandleFunc("POST /debug/games/{id}/restore/{name}", h.handleRestore)
}

// /debug/games/{id}/log?tail=50 - хвост журнала партии
func (h *DebugHandler) handleLog(w http.ResponseWriter, r *http.Request) {
	tail := 50
	if v := r.URL.Query().Get("tail"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "tail must be a non-negative integer", http.StatusBadRequest)
			return
		}
		tail = n
	}

	lines, err := h.Service.LogTail(r.Context(), r.PathValue("id"), tail)
	if err != nil {
		writeError(w, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	writeJSON(w, http.StatusOK, lines)
}

// /debug/games/{id}/snapshot - полный снапшот без тумана войны
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Store.LoadGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, storageErr(err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *DebugHandler) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	names, err := h.Service.Store.ListSnapshots(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *DebugHandler) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	id, name := r.PathValue("id"), r.PathValue("name")

	lock := h.Service.lockGame(id)
	lock.Lock()
	defer lock.Unlock()

	if err := h.Service.Store.SaveSnapshot(r.Context(), id, name); err != nil {
		writeError(w, storageErr(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"game": id, "snapshot": name})
}

// handleRestore делает именованную точку текущим состоянием партии
func (h *DebugHandler) handleRestore(w http.ResponseWriter, r *http.Request) {
	id, name := r.PathValue("id"), r.PathValue("name")
	if err := h.Service.Restore(r.Context(), id, name); err != nil {
		writeError(w, storageErr(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"game": id, "restored": name})
}

// LogTail - последние n строк журнала партии
func (s *GameService) LogTail(ctx context.Context, gameID string, n int) ([]string, error) {
	lock := s.lockGame(gameID)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return g.LogTail(n), nil
}

// Restore загружает именованный снапшот, проверяет его движком и сохраняет как текущий
func (s *GameService) Restore(ctx context.Context, gameID, name string) error {
	lock := s.lockGame(gameID)
	lock.Lock()
	defer lock.Unlock()

	snap, err := s.Store.LoadSnapshot(ctx, gameID, name)
	if err != nil {
		return err
	}
	g, err := engine.FromSnapshot(snap, s.opts.Engine, engine.WithGameID(gameID))
	if err != nil {
		return fmt.Errorf("snapshot %s/%s: %w", gameID, name, err)
	}
	if err := s.Store.SaveGame(ctx, gameID, g.Snapshot()); err != nil {
		return err
	}
	s.Hub.Publish(gameID, func(v domain.PlayerID) api.ServerResponse {
		return *g.BuildStateFor(v, nil)
	})
	s.log.WithField("game_id", gameID).WithField("snapshot", name).Info("Game restored.")
	return nil
}

func storageErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%v: %w", err, ErrGameNotFound)
	}
	return err
}
