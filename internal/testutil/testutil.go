package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"monkid.com/backoffice/internal/bootstrap"
	"monkid.com/backoffice/internal/config"
	"monkid.com/backoffice/internal/entity"
)

const Password = "s3cret-pass"

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, bootstrap.Migrate(db))
	return db
}

// Config returns a production-like configuration suitable for tests.
func Config() *config.Config {
	return &config.Config{
		AppEnv:            "test",
		Port:              "0",
		AllowedOrigins:    []string{"http://localhost:3000"},
		FrontendURL:       "http://localhost:3000",
		JWTSecret:         "test-secret",
		AccessTokenTTL:    30 * time.Minute,
		RefreshTokenTTL:   7 * 24 * time.Hour,
		SessionTTL:        14 * 24 * time.Hour,
		SessionCookieName: "sessionid",
		DevFallbackEmail:  "admin@example.com",
		DefaultPageSize:   50,
		MaxPageSize:       1000,
	}
}

// Roles selects the flags of a user created with CreateUser.
type Roles struct {
	Teacher   bool
	Admin     bool
	Superuser bool
	Inactive  bool
}

func CreateUser(t *testing.T, db *gorm.DB, email string, roles Roles) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    "Test",
		LastName:     "User",
		IsTeacher:    roles.Teacher,
		IsAdmin:      roles.Admin,
		IsStaff:      roles.Admin || roles.Superuser,
		IsSuperuser:  roles.Superuser,
		IsActive:     !roles.Inactive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
