package storage

import (
	"async4x-server/internal/engine"
	"async4x-server/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrGameExists = errors.New("game already exists")
)

// Store - хранилище партий. Каждая партия лежит одним конвертом (см. Encode).
type Store interface {
	CreateGame(ctx context.Context, id string, s *engine.Snapshot) error
	LoadGame(ctx context.Context, id string) (*engine.Snapshot, error)
	SaveGame(ctx context.Context, id string, s *engine.Snapshot) error
	ListGames(ctx context.Context) ([]GameInfo, error)

	// Именованные точки сохранения поверх текущего состояния
	SaveSnapshot(ctx context.Context, gameID, name string) error
	LoadSnapshot(ctx context.Context, gameID, name string) (*engine.Snapshot, error)
	ListSnapshots(ctx context.Context, gameID string) ([]string, error)

	Close() error
}

// GameInfo - строка списка партий без распаковки снапшота
type GameInfo struct {
	ID        string
	Players   []string
	Active    string
	Turn      int
	Round     int
	UpdatedAt time.Time
}

// GameRecord - таблица games
type GameRecord struct {
	ID        string `gorm:"primaryKey;size:64"`
	Players   string `gorm:"size:255"` // через запятую
	Active    string `gorm:"size:64"`
	Turn      int
	Round     int
	Blob      []byte
	UpdatedAt time.Time
}

func (GameRecord) TableName() string { return "games" }

// SnapshotRecord - таблица snapshots
type SnapshotRecord struct {
	ID        uint   `gorm:"primaryKey"`
	GameID    string `gorm:"size:64;uniqueIndex:idx_game_snapshot"`
	Name      string `gorm:"size:128;uniqueIndex:idx_game_snapshot"`
	Blob      []byte
	CreatedAt time.Time
}

func (SnapshotRecord) TableName() string { return "snapshots" }

// Config - параметры подключения
type Config struct {
	Type       string // sqlite | postgres
	SqlitePath string // пусто - база в памяти

	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// GormStore реализует Store поверх gorm (sqlite или postgres)
type GormStore struct {
	DB  *gorm.DB
	log *logrus.Entry
}

var _ Store = (*GormStore)(nil)

// Open подключается к базе и создает таблицы
func Open(cfg Config) (*GormStore, error) {
	gcfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.Type) {
	case "", "sqlite":
		path := cfg.SqlitePath
		if path == "" {
			path = ":memory:"
		}
		db, err = gorm.Open(sqlite.Open(path), gcfg)
		if err == nil && path == ":memory:" {
			// У каждого соединения своя база в памяти
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, fmt.Errorf("failed to access sql interface: %w", dbErr)
			}
			sqlDB.SetMaxOpenConns(1)
		}
	case "postgres":
		dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gcfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Type, err)
	}

	if err := db.AutoMigrate(&GameRecord{}, &SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	s := &GormStore{
		DB:  db,
		log: logger.Component("storage").WithField("driver", db.Dialector.Name()),
	}
	s.log.Info("Game store ready.")
	return s, nil
}

func (s *GormStore) CreateGame(ctx context.Context, id string, snap *engine.Snapshot) error {
	rec, err := newGameRecord(id, snap)
	if err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	if res.Error != nil {
		return fmt.Errorf("create game %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("create game %s: %w", id, ErrGameExists)
	}
	s.log.WithField("game_id", id).Debug("Game created.")
	return nil
}

func (s *GormStore) LoadGame(ctx context.Context, id string) (*engine.Snapshot, error) {
	var rec GameRecord
	if err := s.DB.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return Decode(rec.Blob)
}

// SaveGame перезаписывает текущее состояние партии (upsert)
func (s *GormStore) SaveGame(ctx context.Context, id string, snap *engine.Snapshot) error {
	rec, err := newGameRecord(id, snap)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"players", "active", "turn", "round", "blob", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

func (s *GormStore) ListGames(ctx context.Context) ([]GameInfo, error) {
	var recs []GameRecord
	err := s.DB.WithContext(ctx).
		Select("id", "players", "active", "turn", "round", "updated_at").
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]GameInfo, 0, len(recs))
	for _, r := range recs {
		out = append(out, GameInfo{
			ID:        r.ID,
			Players:   strings.Split(r.Players, ","),
			Active:    r.Active,
			Turn:      r.Turn,
			Round:     r.Round,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

// SaveSnapshot копирует текущий конверт партии под именем name.
// Повторное сохранение с тем же именем перезаписывает точку.
func (s *GormStore) SaveSnapshot(ctx context.Context, gameID, name string) error {
	var rec GameRecord
	if err := s.DB.WithContext(ctx).First(&rec, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("game %s: %w", gameID, ErrNotFound)
		}
		return fmt.Errorf("snapshot %s/%s: %w", gameID, name, err)
	}

	snap := SnapshotRecord{GameID: gameID, Name: name, Blob: rec.Blob, CreatedAt: time.Now().UTC()}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"blob", "created_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("snapshot %s/%s: %w", gameID, name, err)
	}
	s.log.WithFields(logrus.Fields{"game_id": gameID, "name": name}).Info("Snapshot saved.")
	return nil
}

func (s *GormStore) LoadSnapshot(ctx context.Context, gameID, name string) (*engine.Snapshot, error) {
	var rec SnapshotRecord
	err := s.DB.WithContext(ctx).First(&rec, "game_id = ? AND name = ?", gameID, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("snapshot %s/%s: %w", gameID, name, ErrNotFound)
		}
		return nil, fmt.Errorf("load snapshot %s/%s: %w", gameID, name, err)
	}
	return Decode(rec.Blob)
}

func (s *GormStore) ListSnapshots(ctx context.Context, gameID string) ([]string, error) {
	var names []string
	err := s.DB.WithContext(ctx).Model(&SnapshotRecord{}).
		Where("game_id = ?", gameID).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots %s: %w", gameID, err)
	}
	return names, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGameRecord(id string, snap *engine.Snapshot) (*GameRecord, error) {
	blob, err := Encode(snap)
	if err != nil {
		return nil, err
	}
	players := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		players[i] = string(p)
	}
	return &GameRecord{
		ID:        id,
		Players:   strings.Join(players, ","),
		Active:    string(snap.ActivePlayer),
		Turn:      snap.TurnNumber,
		Round:     snap.RoundNumber,
		Blob:      blob,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
