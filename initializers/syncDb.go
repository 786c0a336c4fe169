package initializers

import (
	"log"

	"github.com/acestore/acestore-api/models"
)

func SyncDatabase() {
	if err := DB.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatal("Failed to sync database: ", err)
	}
	log.Println("Database synced successfully.")
}
