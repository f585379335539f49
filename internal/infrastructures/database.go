package infrastructures

import (
	"os"

	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	db, err := gorm.Open(postgres.Open(os.Getenv("DATABASE_URL")), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Job{},
		&models.PodDocument{},
		&models.AuditLog{},
		&models.Invoice{},
		&models.PriceMatrix{},
	); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	return db
}
