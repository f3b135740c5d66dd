package cli

import (
	"fmt"
	"log"

	"github.com/rowanvale/strive/internal/db"
	"github.com/rowanvale/strive/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrateCommand brings the schema up to date and seeds the badge and
// challenge catalogs. Safe to re-run: existing rows are left alone.
func RunMigrateCommand(databaseURL string, sqlitePath string, withDevUsers bool) error {
	database, err := db.Open(databaseURL, sqlitePath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := db.Seed(database); err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}

	if withDevUsers {
		if err := seedDevUsers(database); err != nil {
			return fmt.Errorf("seed dev users: %w", err)
		}
	}

	log.Println("migration complete")
	return nil
}

var devUsers = []struct {
	email       string
	password    string
	displayName string
	role        string
}{
	{"admin@example.com", "admin12345", "Admin", models.RoleAdmin},
	{"user@example.com", "user12345", "Demo User", models.RoleUser},
}

func seedDevUsers(database *gorm.DB) error {
	for _, seed := range devUsers {
		var count int64
		if err := database.Model(&models.User{}).Where("email = ?", seed.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Email:        seed.email,
			PasswordHash: string(passwordHash),
			DisplayName:  seed.displayName,
			Role:         seed.role,
			Theme:        models.ThemeSystem,
		}
		if err := database.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("seeded dev user %s", seed.email)
	}
	return nil
}
