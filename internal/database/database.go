package database

import (
	"fmt"
	"os"
	"time"

	pkgLogger "github.com/nkamgang/scolaris-api/pkg/logger"

	"github.com/nkamgang/scolaris-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*gorm.DB, error) {
	// Configure GORM logger
	logLevel := logger.Silent
	if os.Getenv("ENVIRONMENT") != "production" {
		logLevel = logger.Info
	}

	gormLogger := pkgLogger.NewGormLogger(
		logLevel,
		200*time.Millisecond,
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true, // Improve performance
		PrepareStmt:            true, // Cache prepared statements
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate applies the schema and seeds the fixed payment plan catalog
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Teacher{},
		&models.Class{},
		&models.Student{},
		&models.Course{},
		&models.ScheduleSlot{},
		&models.Evaluation{},
		&models.FeeSchedule{},
		&models.PaymentPlan{},
		&models.Receipt{},
		&models.Notification{},
		&models.AuditLog{},
		&models.DashboardCache{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return seedPaymentPlans(db)
}

func seedPaymentPlans(db *gorm.DB) error {
	for _, plan := range models.DefaultPaymentPlans() {
		var existing models.PaymentPlan
		err := db.Where("name = ?", plan.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&plan).Error; err != nil {
			return fmt.Errorf("failed to seed payment plan %q: %w", plan.Name, err)
		}
	}
	return nil
}
