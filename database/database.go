package database

import (
	"fmt"
	"log"

	config "github.com/akashpawar6363/sanjay-study-center/configs"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Admission{},
		&models.Setting{},
		&models.EmailLog{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedDefaults creates the default seat categories and the settings rows the
// receipt sequencer and the occupancy display depend on. Existing rows are
// left untouched so a restart never resets the receipt counter.
func SeedDefaults() {
	defaultCategories := []models.Category{
		{Name: "Reserved", Rate: 1300, IsDefault: true},
		{Name: "Non-Reserved", Rate: 1100, IsDefault: true},
		{Name: "Reserved with Locker", Rate: 1600, IsDefault: true},
	}

	var count int64
	if err := DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check categories: %v", err)
		return
	}
	if count == 0 {
		if err := DB.Create(&defaultCategories).Error; err != nil {
			log.Fatalf("🔥 Failed to seed default categories: %v", err)
			return
		}
		log.Println("✅ Default categories seeded successfully")
	}

	defaultSettings := map[string]string{
		models.SettingReceiptCounter: "1000",
		models.SettingTotalSeats:     "100",
	}
	for key, value := range defaultSettings {
		var setting models.Setting
		err := DB.Where("key = ?", key).First(&setting).Error
		if err == gorm.ErrRecordNotFound {
			if err := DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				log.Fatalf("🔥 Failed to seed setting %s: %v", key, err)
			}
		} else if err != nil {
			log.Fatalf("🔥 Failed to check setting %s: %v", key, err)
		}
	}
}
