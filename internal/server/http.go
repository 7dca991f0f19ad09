package server

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/version"
	"async4x-server/pkg/api"
	"async4x-server/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Server struct {
	Service *GameService
	Port    string

	// Лимит запросов в секунду на IP (и на websocket-подключение)
	RateLimit rate.Limit
	RateBurst int

	ipMu       sync.Mutex
	ipLimiters map[string]*rate.Limiter

	httpServer *http.Server
}

func New(service *GameService, port string, limit float64, burst int) *Server {
	if limit <= 0 {
		limit = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &Server{
		Service:    service,
		Port:       port,
		RateLimit:  rate.Limit(limit),
		RateBurst:  burst,
		ipLimiters: make(map[string]*rate.Limiter),
	}
}

// Handler собирает все маршруты
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /version", s.handleVersion)

	mux.HandleFunc("GET /games", s.handleListGames)
	mux.HandleFunc("POST /games", s.handleCreateGame)
	mux.HandleFunc("GET /games/{id}/state", s.handleState)
	mux.HandleFunc("POST /games/{id}/command", s.handleCommand)

	if s.Service.opts.Debug {
		NewDebugHandler(s.Service).RegisterRoutes(mux)
	}

	return enableCORS(s.rateLimited(mux))
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Async 4X server running on :%s", s.Port)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limiterFor(ip string) *rate.Limiter {
	s.ipMu.Lock()
	defer s.ipMu.Unlock()
	l, ok := s.ipLimiters[ip]
	if !ok {
		l = rate.NewLimiter(s.RateLimit, s.RateBurst)
		s.ipLimiters[ip] = l
	}
	return l
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiterFor(ip).Allow() {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.Service.ListGames(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var p api.CreateGamePayload
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid payload format", http.StatusBadRequest)
			return
		}
	}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := s.Service.CreateGame(r.Context(), p.Seed, p.Radius)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.GameSummary{
		ID:           g.ID,
		Players:      playerNames(g.Players),
		ActivePlayer: string(g.Active),
		Turn:         g.TurnNumber,
		Round:        g.RoundNumber,
		UpdatedAt:    time.Now().UnixMilli(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	viewer := domain.PlayerID(r.URL.Query().Get("viewer"))
	st, err := s.Service.State(r.Context(), r.PathValue("id"), viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd api.ClientCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid payload format", http.StatusBadRequest)
		return
	}

	resp, err := s.Service.Apply(r.Context(), r.PathValue("id"), domain.PlayerID(cmd.Viewer), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError переводит ошибки сервиса в HTTP-статусы
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotYourTurn):
		http.Error(w, "Not your turn", http.StatusForbidden)
	case errors.Is(err, ErrNotPlayer):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrBadPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Log.WithError(err).Error("Request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("write json response failed")
	}
}

func playerNames(ps []domain.PlayerID) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
