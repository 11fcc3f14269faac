package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

// FruitFixtures returns the ten reference fruits. IDs are left empty; they
// are assigned by SeedFruits.
func FruitFixtures() []*Fruit {
	row := func(name string, d int, price string, active bool) *Fruit {
		return &Fruit{
			Name:        name,
			CreatedDate: day(d),
			Price:       decimal.RequireFromString(price),
			IsActive:    active,
		}
	}

	fruits := []*Fruit{
		row("Apple", 1, "1.50", true),
		row("Banana", 2, "0.75", true),
		row("Cherry", 3, "2.25", false),
		row("Date", 4, "3.00", true),
		row("Elderberry", 5, "4.50", false),
		row("Fig", 6, "2.75", true),
		row("Grape", 7, "1.25", true),
		row("Honeydew", 8, "3.75", false),
		row("Kiwi", 9, "2.00", true),
		row("Lemon", 10, "1.00", true),
	}
	fruits[4].Notes = null.StringFrom("seasonal")
	return fruits
}

// SeedFruits inserts fruits and fills in their generated IDs.
func SeedFruits(ctx context.Context, db *sql.DB, fruits []*Fruit) error {
	query := `
		INSERT INTO fruits (id, name, created_date, price, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, f := range fruits {
		id := uuid.New().String()
		_, err := db.ExecContext(ctx, query, id, f.Name, f.CreatedDate, f.Price, f.IsActive, f.Notes)
		if err != nil {
			return fmt.Errorf("failed to seed fruit %d: %w", i, err)
		}
		f.ID = id
	}

	return nil
}

// CleanupTables truncates all test tables.
func CleanupTables(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "TRUNCATE TABLE fruits"); err != nil {
		return fmt.Errorf("failed to truncate table fruits: %w", err)
	}
	return nil
}
