package utils

import (
	"os"
	"path/filepath"

	db "github.com/tendermint/tm-db"
)

var (
	CommonPotHome   string
	CommonPotConfig string
)

func GetCommonPotHome() string {
	if CommonPotHome != "" {
		return CommonPotHome
	}

	home := os.Getenv("COMMONPOTHOME")
	if home != "" {
		return home
	}

	return os.ExpandEnv(filepath.Join("$HOME", ".commonpot"))
}

func GetCommonPotConfigPath() string {
	if CommonPotConfig != "" {
		return CommonPotConfig
	}

	return filepath.Join(GetCommonPotHome(), "config", "config.toml")
}

// Storage keeps the node databases in one place.
type Storage struct {
	home     string
	stateDB  db.DB
	eventsDB db.DB
}

func NewStorage(home string) (*Storage, error) {
	dataDir := filepath.Join(home, "data")

	stateDB, err := db.NewGoLevelDB("state", dataDir)
	if err != nil {
		return nil, err
	}

	eventsDB, err := db.NewGoLevelDB("events", dataDir)
	if err != nil {
		return nil, err
	}

	return &Storage{home: home, stateDB: stateDB, eventsDB: eventsDB}, nil
}

// NewInMemoryStorage is used in tests.
func NewInMemoryStorage() *Storage {
	return &Storage{stateDB: db.NewMemDB(), eventsDB: db.NewMemDB()}
}

func (s *Storage) GetHome() string {
	return s.home
}

func (s *Storage) StateDB() db.DB {
	return s.stateDB
}

func (s *Storage) EventDB() db.DB {
	return s.eventsDB
}

func (s *Storage) Close() error {
	if err := s.stateDB.Close(); err != nil {
		return err
	}

	return s.eventsDB.Close()
}
