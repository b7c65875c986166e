package property

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"unilodge-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Property{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db, 5*time.Second)
}

// seedListings creates n listings titled "Listing 01".."Listing n" with
// price 100*index, alternating between two cities.
func seedListings(t *testing.T, repo *Repository, n int) {
	t.Helper()

	for i := 1; i <= n; i++ {
		city, country := "Leeds", "UK"
		if i%2 == 0 {
			city, country = "Berlin", "Germany"
		}
		p := &models.Property{
			Slug:        fmt.Sprintf("listing-%02d", i),
			Title:       fmt.Sprintf("Listing %02d", i),
			Price:       float64(100 * i),
			City:        city,
			Country:     country,
			Description: fmt.Sprintf("Listing number %02d near campus", i),
			University:  "Test University",
			Area:        "Centre",
			Images:      []string{"https://example.com/img.jpg"},
		}
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("seed listing %d: %v", i, err)
		}
	}
}
