package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"rental-pricing-backend/internal/config"
	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/pricing"
	"rental-pricing-backend/internal/security"
)

type DevUser struct {
	ID    int32    `yaml:"id"`
	Email string   `yaml:"email"`
	Roles []string `yaml:"roles"`
}

type Product struct {
	Name string `yaml:"name"`
}

type PricelistItem struct {
	PricelistID int32   `yaml:"pricelist_id"`
	Product     string  `yaml:"product"`
	MinQuantity float64 `yaml:"min_quantity"`
	FixedPrice  float64 `yaml:"fixed_price"`
}

type Line struct {
	Product           string  `yaml:"product"`
	Name              string  `yaml:"name"`
	Quantity          float64 `yaml:"quantity"`
	StartDate         string  `yaml:"start_date"`
	ReturnDate        string  `yaml:"return_date"`
	RentalCompanyFees float64 `yaml:"rental_company_fees"`
}

type Order struct {
	Name           string   `yaml:"name"`
	IsRentalOrder  bool     `yaml:"is_rental_order"`
	DurationDays   *float64 `yaml:"duration_days"`
	RemainingHours *float64 `yaml:"remaining_hours"`
	PricelistID    *int32   `yaml:"pricelist_id"`
	Timezone       string   `yaml:"timezone"`
	Language       string   `yaml:"language"`
	Lines          []Line   `yaml:"lines"`
}

type SetupData struct {
	ConfigFile     string          `yaml:"config_file"`
	DevUser        DevUser         `yaml:"dev_user"`
	Products       []Product       `yaml:"products"`
	PricelistItems []PricelistItem `yaml:"pricelist_items"`
	Orders         []Order         `yaml:"orders"`
}

func main() {
	setupFile := flag.String("seed", "config/seed.dev.yaml", "Path to the seed data file")
	flag.Parse()

	setupData, err := readSetupFile(*setupFile)
	if err != nil {
		log.Fatalf("Failed to read setup file: %v", err)
	}

	cfg, err := config.Load(resolveConfigPath(setupData.ConfigFile))
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	db, err := connectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := populateData(db, setupData, cfg); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	log.Println("Seed data successfully populated")

	token, err := security.NewTokenManager(cfg.JWT.Secret).GenerateAccessToken(setupData.DevUser.ID, setupData.DevUser.Email, setupData.DevUser.Roles)
	if err != nil {
		log.Fatalf("Failed to issue dev token: %v", err)
	}
	fmt.Printf("Authorization: Bearer %s\n", token)
}

func readSetupFile(filename string) (*SetupData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var setupData SetupData
	if err := yaml.Unmarshal(data, &setupData); err != nil {
		return nil, err
	}
	return &setupData, nil
}

func resolveConfigPath(configPath string) string {
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	fullPath := filepath.Join(findProjectRoot(), configPath)
	if _, err := os.Stat(fullPath); err == nil {
		return fullPath
	}
	return configPath
}

func findProjectRoot() string {
	// Look for go.mod to identify project root
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "."
}

func connectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Printf("Connected to database: %s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	return db, nil
}

func populateData(db *sql.DB, data *SetupData, cfg *config.Config) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	productIDs := make(map[string]int32, len(data.Products))
	for _, p := range data.Products {
		var id int32
		if err := tx.QueryRow(`INSERT INTO products (name) VALUES ($1) RETURNING id`, p.Name).Scan(&id); err != nil {
			return fmt.Errorf("failed to create product %s: %w", p.Name, err)
		}
		productIDs[p.Name] = id
		log.Printf("Product %q created with ID: %d", p.Name, id)
	}

	for _, item := range data.PricelistItems {
		productID, ok := productIDs[item.Product]
		if !ok {
			return fmt.Errorf("pricelist item references unknown product %q", item.Product)
		}
		_, err := tx.Exec(`INSERT INTO pricelist_items (pricelist_id, product_id, min_quantity, fixed_price) VALUES ($1, $2, $3, $4)`,
			item.PricelistID, productID, item.MinQuantity, item.FixedPrice)
		if err != nil {
			return fmt.Errorf("failed to create pricelist item for %s: %w", item.Product, err)
		}
	}

	for _, o := range data.Orders {
		if err := createOrder(tx, o, productIDs, cfg); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func createOrder(tx *sql.Tx, o Order, productIDs map[string]int32, cfg *config.Config) error {
	opts := domain.DefaultPrintOptions()
	now := time.Now()

	var orderID int32
	err := tx.QueryRow(`
		INSERT INTO sale_orders (name, is_rental_order, duration_days, remaining_hours, pricelist_id, timezone, language,
		                         print_image, image_sizes, displayed_company_in_printed_document, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, o.Name, o.IsRentalOrder, o.DurationDays, o.RemainingHours, o.PricelistID, o.Timezone, o.Language,
		opts.PrintImage, opts.ImageSizes, opts.DisplayedCompany, now, now).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("failed to create order %s: %w", o.Name, err)
	}
	log.Printf("Order %s created with ID: %d", o.Name, orderID)

	header := &domain.Order{ID: orderID, Timezone: o.Timezone, Language: o.Language}
	label, err := pricing.LabelOptionsFor(header, cfg.Pricing.DefaultTimezone, cfg.Pricing.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("order %s: %w", o.Name, err)
	}
	formatter := pricing.NewFormatter()

	for i, l := range o.Lines {
		productID, ok := productIDs[l.Product]
		if !ok {
			return fmt.Errorf("order %s references unknown product %q", o.Name, l.Product)
		}

		var start, end *time.Time
		name := l.Name
		duration := 0.0
		if l.StartDate != "" && l.ReturnDate != "" {
			s, err := dateparse.ParseIn(l.StartDate, label.Location)
			if err != nil {
				return fmt.Errorf("order %s line %d: %w", o.Name, i+1, err)
			}
			e, err := dateparse.ParseIn(l.ReturnDate, label.Location)
			if err != nil {
				return fmt.Errorf("order %s line %d: %w", o.Name, i+1, err)
			}
			s, e = s.UTC(), e.UTC()
			start, end = &s, &e
			duration = pricing.DurationInDays(s, e)
			name += "\n" + pricing.FormatRangeLabel(formatter, s, e, label)
		}

		_, err := tx.Exec(`
			INSERT INTO sale_order_lines (order_id, sequence, product_id, name, product_uom_qty, start_date, return_date,
			                              rental_duration_in_days, rental_company_fees)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, orderID, (i+1)*10, productID, name, l.Quantity, start, end, duration, l.RentalCompanyFees)
		if err != nil {
			return fmt.Errorf("failed to create line %d of order %s: %w", i+1, o.Name, err)
		}
	}
	return nil
}
