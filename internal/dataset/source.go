package dataset

import (
	"fmt"

	"plotpirate/server/internal/database"

	"github.com/sirupsen/logrus"
)

// Source selects where the dataset is loaded from. SQLitePath wins over
// Path; with both empty the embedded dataset is used.
type Source struct {
	Path       string
	SQLitePath string
}

func (s Source) String() string {
	switch {
	case s.SQLitePath != "":
		return "sqlite:" + s.SQLitePath
	case s.Path != "":
		return "file:" + s.Path
	default:
		return "embedded"
	}
}

// Open loads the dataset from src and builds the in-memory repository.
func Open(src Source, logger *logrus.Logger) (*MemoryRepository, error) {
	if logger == nil {
		logger = logrus.New()
	}

	var (
		repo *MemoryRepository
		err  error
	)
	switch {
	case src.SQLitePath != "":
		repo, err = openSQLite(src.SQLitePath, logger)
	case src.Path != "":
		var file *File
		if file, err = LoadFile(src.Path); err == nil {
			repo, err = FromFile(file)
		}
	default:
		var file *File
		if file, err = LoadEmbedded(); err == nil {
			repo, err = FromFile(file)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", src, err)
	}

	logger.WithFields(logrus.Fields{
		"source":   src.String(),
		"listings": repo.Len(),
	}).Info("Dataset loaded")
	return repo, nil
}

func openSQLite(path string, logger *logrus.Logger) (*MemoryRepository, error) {
	db, err := database.NewDatabase(path, true, logger)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	listings, err := db.GetAllListings()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(listings)
}
