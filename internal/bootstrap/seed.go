package bootstrap

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.BlacklistedToken{},
		&entity.Student{},
		&entity.Teacher{},
		&entity.TeacherAttendance{},
	)
}

// SeedAdminUser creates the development administrator if it does not exist yet.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Admin user seeded: %s", email)
	return nil
}
