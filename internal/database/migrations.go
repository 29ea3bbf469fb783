package database

import "fmt"

// RunMigrations creates the listings table and its indexes if they do not exist.
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&listingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate listings table: %w", err)
	}
	return nil
}
