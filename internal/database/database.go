package database

import (
	"log"

	"project-tracker/internal/config"
	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres, applies pool settings from the config and
// migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.ProjectRole{},
		&models.Token{},
	)
}

// SeedDefaultManager creates a bootstrap Manager account when the users
// table is empty, so a fresh deployment has someone who can create projects.
func SeedDefaultManager(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := models.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     "manager",
		PasswordHash: string(hashed),
		Role:         models.RoleManager,
	}
	if err := db.Create(&manager).Error; err != nil {
		return err
	}

	log.Println("Default manager user created (username: manager, password: changeme)")
	return nil
}
