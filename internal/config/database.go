package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"staff_transit/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment
// variables, migrates the schema and installs the partial indexes
// AutoMigrate cannot express.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "staff_transit")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Driver{},
		&models.Vehicle{},
		&models.Destination{},
		&models.Employee{},
		&models.DestinationPosting{},
		&models.Assignment{},
		&models.Trip{},
		&models.RoundTripLink{},
		&models.PersonnelReservation{},
		&models.VisitorReservation{},
		&models.Visitor{},
		&models.TripTemplate{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	// One active return link per outbound trip; cancelled links stay
	// behind for history, so the uniqueness is scoped to status.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_active_outbound_link
		ON round_trip_links (outbound_trip_id)
		WHERE status = 'active' AND deleted_at IS NULL;`)

	// One open destination posting per employee.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_posting
		ON destination_postings (employee_id)
		WHERE end_date IS NULL AND deleted_at IS NULL;`)

	DB = db
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
