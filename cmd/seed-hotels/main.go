package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/afrostay/hotel-booking-backend/internal/config"
	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

type seedHotel struct {
	name     string
	country  string
	city     string
	price    float64
	currency string
	rating   float64
	rooms    int
}

// Demo catalog covering the major African markets
var seedHotels = []seedHotel{
	{"Lagos Continental Hotel", "Nigeria", "Lagos", 120, "NGN", 4.3, 80},
	{"Abuja Grand Hotel", "Nigeria", "Abuja", 100, "NGN", 4.0, 60},
	{"Accra Beach Resort", "Ghana", "Accra", 90, "GHS", 4.2, 50},
	{"Kumasi Royal Hotel", "Ghana", "Kumasi", 80, "GHS", 3.9, 40},
	{"Cape Town Seaside Hotel", "South Africa", "Cape Town", 150, "ZAR", 4.7, 90},
	{"Johannesburg Central Hotel", "South Africa", "Johannesburg", 130, "ZAR", 4.4, 110},
	{"Nairobi Safari Lodge", "Kenya", "Nairobi", 110, "KES", 4.5, 70},
	{"Mombasa Coast Hotel", "Kenya", "Mombasa", 95, "KES", 4.1, 55},
	{"Cairo Nile View Hotel", "Egypt", "Cairo", 105, "EGP", 4.2, 120},
	{"Alexandria Harbor Hotel", "Egypt", "Alexandria", 85, "EGP", 3.8, 65},
	{"Marrakech Medina Riad", "Morocco", "Marrakech", 115, "MAD", 4.6, 30},
	{"Casablanca Atlantic Hotel", "Morocco", "Casablanca", 125, "MAD", 4.3, 85},
	{"Addis Ababa Highland Hotel", "Ethiopia", "Addis Ababa", 75, "ETB", 3.9, 45},
	{"Dar es Salaam Bay Hotel", "Tanzania", "Dar es Salaam", 88, "TZS", 4.0, 50},
	{"Kampala Hillside Hotel", "Uganda", "Kampala", 70, "UGX", 3.7, 40},
	{"Algiers Mediterranean Hotel", "Algeria", "Algiers", 92, "DZD", 4.1, 60},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewHotelRepository(db)

	inserted := 0
	for _, sh := range seedHotels {
		// Skip hotels already present by name and country
		var existing int
		err := db.Get(&existing, `SELECT COUNT(*) FROM hotels WHERE name = $1 AND country = $2`, sh.name, sh.country)
		if err != nil {
			logger.Fatalf("Failed to check existing hotel %q: %v", sh.name, err)
		}
		if existing > 0 {
			logger.WithFields(logrus.Fields{
				"name":    sh.name,
				"country": sh.country,
			}).Info("Hotel already exists, skipping")
			continue
		}

		hotel := &models.Hotel{
			Name:           sh.name,
			Country:        sh.country,
			City:           sh.city,
			BasePrice:      sh.price,
			BaseCurrency:   sh.currency,
			Rating:         sh.rating,
			TotalRooms:     sh.rooms,
			AvailableRooms: sh.rooms,
			Amenities:      models.StringList{"wifi", "breakfast", "parking"},
			Images:         models.StringList{},
		}

		if err := repo.Create(hotel); err != nil {
			logger.Fatalf("Failed to insert hotel %q: %v", sh.name, err)
		}

		logger.WithFields(logrus.Fields{
			"hotel_id": hotel.ID,
			"name":     hotel.Name,
			"country":  hotel.Country,
		}).Info("Hotel inserted")
		inserted++
	}

	logger.Infof("Seeding completed: %d hotels inserted", inserted)
}
