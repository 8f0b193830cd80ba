package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/civicdesk/backend/internal/config"
	"github.com/civicdesk/backend/internal/db"
	"github.com/civicdesk/backend/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type DepartmentData struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail"`
}

type SeedData struct {
	Users       []UserData       `json:"users"`
	Departments []DepartmentData `json:"departments"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Seeding database with sample data...")
	if err := seed(gdb); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	log.Println("Database seeding completed successfully")
}

func seed(gdb *gorm.DB) error {
	raw, err := os.ReadFile("data/seed.json")
	if err != nil {
		return err
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	for _, d := range data.Departments {
		department := models.Department{
			Name:         d.Name,
			Code:         d.Code,
			Description:  d.Description,
			ContactEmail: d.ContactEmail,
			IsActive:     true,
		}
		var existing models.Department
		if err := gdb.Where("code = ?", d.Code).First(&existing).Error; err != nil {
			if err := gdb.Create(&department).Error; err != nil {
				log.Printf("Error creating department %s: %v", d.Name, err)
			} else {
				log.Printf("Created department: %s (%s)", d.Name, d.Code)
			}
		} else {
			log.Printf("Department already exists: %s", d.Name)
		}
	}

	for _, u := range data.Users {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", u.Email, err)
			continue
		}

		role := models.UserRole(u.Role)
		if !models.ValidRole(role) {
			log.Printf("Unknown role %s for user %s, defaulting to user", u.Role, u.Email)
			role = models.RoleUser
		}

		user := models.User{
			Name:       u.Name,
			Email:      u.Email,
			Password:   string(hashedPassword),
			Role:       role,
			Department: u.Department,
			IsActive:   true,
		}

		var existing models.User
		if err := gdb.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			if err := gdb.Create(&user).Error; err != nil {
				log.Printf("Error creating user %s: %v", u.Email, err)
			} else {
				log.Printf("Created user: %s (%s)", u.Email, u.Role)
			}
		} else {
			log.Printf("User already exists: %s", u.Email)
		}
	}

	return nil
}
