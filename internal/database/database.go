package database

import (
	"errors"
	"fmt"
	"time"

	"plotpirate/server/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNoListingsTable is returned when a snapshot has not been migrated.
var ErrNoListingsTable = errors.New("snapshot has no listings table")

const insertBatchSize = 100

// Database is a SQLite snapshot of the listing dataset.
type Database struct {
	db *gorm.DB
}

// listingRecord is the row layout of the listings table. Position keeps the
// dataset order, which the search results depend on.
type listingRecord struct {
	ID              int64  `gorm:"primaryKey;autoIncrement:false"`
	Position        int    `gorm:"not null;index:idx_listings_position"`
	Name            string `gorm:"not null"`
	Slug            string
	City            string `gorm:"index:idx_listings_city"`
	Micromarket     string
	Type            string   `gorm:"not null"`
	Typologies      []string `gorm:"serializer:json"`
	MinPrice        float64
	MaxPrice        float64
	MinSaleableArea float64
	MaxSaleableArea float64
	PossessionDate  string
	Propscore       float64
	Image           string
	Alt             string
	ProjectStatus   string
	IsWishlisted    *bool
	Latitude        float64 `gorm:"index:idx_listings_coordinates,priority:1"`
	Longitude       float64 `gorm:"index:idx_listings_coordinates,priority:2"`
}

func (listingRecord) TableName() string {
	return "listings"
}

// NewDatabase opens the snapshot at dbPath. With readOnly set the file is
// opened in SQLite read-only mode and must already exist.
func NewDatabase(dbPath string, readOnly bool, logger *logrus.Logger) (*Database, error) {
	dsn := dbPath
	if readOnly {
		dsn = fmt.Sprintf("file:%s?mode=ro", dbPath)
	}

	config := &gorm.Config{}
	if logger != nil {
		config.Logger = gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		config.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", dbPath, err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetAllListings returns every listing in dataset order.
func (d *Database) GetAllListings() ([]models.Listing, error) {
	if !d.db.Migrator().HasTable(&listingRecord{}) {
		return nil, ErrNoListingsTable
	}

	var records []listingRecord
	if err := d.db.Order("position ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	listings := make([]models.Listing, len(records))
	for i, r := range records {
		listings[i] = r.toModel()
	}
	return listings, nil
}

// ReplaceListings swaps the snapshot contents for listings in a single
// transaction, recording their order.
func (d *Database) ReplaceListings(listings []models.Listing) error {
	records := make([]listingRecord, len(listings))
	for i, l := range listings {
		records[i] = fromModel(i, l)
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&listingRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear listings: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert listings: %w", err)
		}
		return nil
	})
}

func (r listingRecord) toModel() models.Listing {
	return models.Listing{
		ID:              r.ID,
		Name:            r.Name,
		Slug:            r.Slug,
		City:            r.City,
		Micromarket:     r.Micromarket,
		Type:            models.ListingType(r.Type),
		Typologies:      r.Typologies,
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
		MinSaleableArea: r.MinSaleableArea,
		MaxSaleableArea: r.MaxSaleableArea,
		PossessionDate:  r.PossessionDate,
		Propscore:       r.Propscore,
		Image:           r.Image,
		Alt:             r.Alt,
		ProjectStatus:   models.ProjectStatus(r.ProjectStatus),
		IsWishlisted:    r.IsWishlisted,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
	}
}

func fromModel(position int, l models.Listing) listingRecord {
	return listingRecord{
		ID:              l.ID,
		Position:        position,
		Name:            l.Name,
		Slug:            l.Slug,
		City:            l.City,
		Micromarket:     l.Micromarket,
		Type:            string(l.Type),
		Typologies:      l.Typologies,
		MinPrice:        l.MinPrice,
		MaxPrice:        l.MaxPrice,
		MinSaleableArea: l.MinSaleableArea,
		MaxSaleableArea: l.MaxSaleableArea,
		PossessionDate:  l.PossessionDate,
		Propscore:       l.Propscore,
		Image:           l.Image,
		Alt:             l.Alt,
		ProjectStatus:   string(l.ProjectStatus),
		IsWishlisted:    l.IsWishlisted,
		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
	}
}
