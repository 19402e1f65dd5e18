package main

import (
	"context"
	"log"
	"os"
	"time"

	"foodshare/internal/database"
	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "foodshare.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data in dependency order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM feedback")
	db.Exec("DELETE FROM matches")
	db.Exec("DELETE FROM requests")
	db.Exec("DELETE FROM donations")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	// ================== CATEGORIES ==================
	log.Println("Creating categories...")
	categoryRepo := repository.NewCategoryRepository(db)
	categories := []domain.Category{
		{Name: "Fresh Produce", Icon: "carrot"},
		{Name: "Bakery", Icon: "bread"},
		{Name: "Dairy", Icon: "milk"},
		{Name: "Canned Goods", Icon: "can"},
		{Name: "Cooked Meals", Icon: "pot"},
		{Name: "Beverages", Icon: "cup"},
	}
	for i := range categories {
		if err := categoryRepo.Create(ctx, &categories[i]); err != nil {
			log.Fatal("Category create failed:", err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	userRepo := repository.NewUserRepository(db)

	donorHash, _ := bcrypt.GenerateFromPassword([]byte("donor123"), bcrypt.DefaultCost)
	donor := domain.User{
		Role:         domain.RoleDonor,
		Name:         "Green Grocer",
		Email:        "donor@foodshare.local",
		PasswordHash: string(donorHash),
		Phone:        "+1-555-0101",
		Address:      "12 Market Street",
		Latitude:     40.7128,
		Longitude:    -74.0060,
		IsVerified:   true,
	}
	if err := userRepo.Create(ctx, &donor); err != nil {
		log.Fatal("Donor create failed:", err)
	}

	recipientHash, _ := bcrypt.GenerateFromPassword([]byte("recipient123"), bcrypt.DefaultCost)
	recipient := domain.User{
		Role:         domain.RoleRecipient,
		Name:         "Community Kitchen",
		Email:        "recipient@foodshare.local",
		PasswordHash: string(recipientHash),
		Phone:        "+1-555-0102",
		Address:      "48 Shelter Avenue",
		Latitude:     40.7306,
		Longitude:    -73.9866,
		IsVerified:   true,
	}
	if err := userRepo.Create(ctx, &recipient); err != nil {
		log.Fatal("Recipient create failed:", err)
	}

	// ================== DONATIONS ==================
	log.Println("Creating donations...")
	donationRepo := repository.NewDonationRepository(db)
	donations := []domain.Donation{
		{
			DonorID:       donor.ID,
			CategoryID:    categories[0].ID,
			Title:         "Surplus vegetables",
			Description:   "Mixed seasonal vegetables from today's delivery",
			Quantity:      "3 crates",
			ExpiryDate:    time.Now().Add(48 * time.Hour),
			PickupAddress: "12 Market Street, rear entrance",
			Latitude:      40.7128,
			Longitude:     -74.0060,
			Status:        domain.DonationAvailable,
		},
		{
			DonorID:       donor.ID,
			CategoryID:    categories[1].ID,
			Title:         "Day-old bread",
			Description:   "Baguettes and rolls, baked yesterday",
			Quantity:      "20 loaves",
			ExpiryDate:    time.Now().Add(24 * time.Hour),
			PickupAddress: "12 Market Street, rear entrance",
			Latitude:      40.7128,
			Longitude:     -74.0060,
			Status:        domain.DonationAvailable,
		},
	}
	for i := range donations {
		if err := donationRepo.Create(ctx, &donations[i]); err != nil {
			log.Fatal("Donation create failed:", err)
		}
	}

	log.Printf("Seed complete: %d categories, 2 users, %d donations", len(categories), len(donations))
}
