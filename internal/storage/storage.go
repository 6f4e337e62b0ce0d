package storage

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyBestScore   = "best_score"
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// UserPreferences stores user settings.
type UserPreferences struct {
	SearchDepth   int           `json:"search_depth"`
	AutoplayDelay time.Duration `json:"autoplay_delay"`
	SoundEnabled  bool          `json:"sound_enabled"`
	LastPlayed    time.Time     `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		SearchDepth:   8,
		AutoplayDelay: 120 * time.Millisecond,
		SoundEnabled:  true,
		LastPlayed:    time.Now(),
	}
}

// PlayStats stores cumulative play statistics.
type PlayStats struct {
	GamesPlayed   int   `json:"games_played"`
	TotalMoves    int64 `json:"total_moves"`
	HighestTile   int   `json:"highest_tile"`
	GamesWith2048 int   `json:"games_with_2048"`
}

// GameRecord represents one finished game.
type GameRecord struct {
	Score   int32
	MaxTile int
	Moves   int
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database at the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBestScore persists the best score.
func (s *Storage) SaveBestScore(score int32) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyBestScore), []byte(strconv.FormatInt(int64(score), 10)))
	})
}

// LoadBestScore returns the persisted best score, or 0 if none.
func (s *Storage) LoadBestScore() (int32, error) {
	var score int32

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyBestScore))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			v, err := strconv.ParseInt(string(val), 10, 32)
			if err != nil {
				return err
			}
			score = int32(v)
			return nil
		})
	})

	return score, err
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults when none
// are stored.
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats saves play statistics.
func (s *Storage) SaveStats(stats *PlayStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads play statistics, returning empty stats when none are
// stored.
func (s *Storage) LoadStats() (*PlayStats, error) {
	stats := &PlayStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame folds one finished game into the statistics and persists
// the best score when it improved.
func (s *Storage) RecordGame(rec GameRecord) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalMoves += int64(rec.Moves)
	if rec.MaxTile > stats.HighestTile {
		stats.HighestTile = rec.MaxTile
	}
	if rec.MaxTile >= 2048 {
		stats.GamesWith2048++
	}

	if err := s.SaveStats(stats); err != nil {
		return err
	}

	best, err := s.LoadBestScore()
	if err != nil {
		return err
	}
	if rec.Score > best {
		return s.SaveBestScore(rec.Score)
	}
	return nil
}
