package auth

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/utils"
)

// Mailer is the slice of the mail service the auth flows need. Sends happen
// after the database write; a failed send never rolls the account back.
type Mailer interface {
	SendVerificationEmail(email, code, name string) error
	SendPasswordResetEmail(email, code, name string) error
	SendWelcomeEmail(email, name string) error
}

// Controller holds the auth endpoints' dependencies.
type Controller struct {
	DB    *gorm.DB
	Mail  Mailer
	Files *utils.FileStore
}

func NewController(db *gorm.DB, mail Mailer, files *utils.FileStore) *Controller {
	return &Controller{DB: db, Mail: mail, Files: files}
}

// normalizeEmail lowercases addresses so uniqueness and lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
