package models

import (
	"errors"
	"math"
	"time"
)

// Investment types offered on the platform.
const (
	TypeRealEstate = "real_estate"
	TypeEurobonds  = "eurobonds"
	TypeAgriTech   = "agri_tech"
	TypeUSStocks   = "us_stocks"
	TypeSavings    = "savings"
	TypeEducation  = "education"
)

// Investment statuses.
const (
	InvestmentPending   = "pending"
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
	InvestmentCancelled = "cancelled"
)

// annualRates maps investment type to its flat annual return rate. The rate
// is applied once at creation; duration does not change the formula.
var annualRates = map[string]float64{
	TypeRealEstate: 0.18,
	TypeEurobonds:  0.085,
	TypeAgriTech:   0.22,
	TypeUSStocks:   0.12,
	TypeSavings:    0.15,
	TypeEducation:  0.10,
}

var ErrInvalidInvestmentType = errors.New("invalid investment type")

type Investment struct {
	ID             uint                 `gorm:"primaryKey" json:"id"`
	UserID         uint                 `gorm:"not null;index:idx_investments_user_status" json:"user_id"`
	Type           string               `gorm:"type:enum('real_estate','eurobonds','agri_tech','us_stocks','savings','education');not null" json:"type"`
	Amount         float64              `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency       string               `gorm:"type:enum('NGN','USD');default:'NGN'" json:"currency"`
	Status         string               `gorm:"type:enum('pending','active','completed','cancelled');default:'pending';index:idx_investments_user_status" json:"status"`
	ExpectedReturn float64              `gorm:"type:decimal(15,2);not null" json:"expected_return"`
	ActualReturn   float64              `gorm:"type:decimal(15,2);not null;default:0.00" json:"actual_return"`
	StartDate      time.Time            `gorm:"not null" json:"start_date"`
	EndDate        time.Time            `gorm:"not null;index" json:"end_date"`
	TransactionID  string               `gorm:"type:varchar(191);not null;uniqueIndex" json:"transaction_id"`
	Documents      []InvestmentDocument `gorm:"foreignKey:InvestmentID" json:"documents,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}

// InvestmentDocument is a stored attachment backing an investment.
type InvestmentDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvestmentID uint      `gorm:"not null;index" json:"investment_id"`
	URL          string    `gorm:"size:512;not null" json:"url"`
	PublicID     string    `gorm:"size:255;not null" json:"public_id"`
	Name         string    `gorm:"size:255" json:"name"`
	ContentType  string    `gorm:"size:100" json:"type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func (InvestmentDocument) TableName() string {
	return "investment_documents"
}

// ExpectedReturn computes amount x annual rate for the given type. The result
// is fixed at creation and never recomputed.
func ExpectedReturn(invType string, amount float64) (float64, error) {
	rate, ok := annualRates[invType]
	if !ok {
		return 0, ErrInvalidInvestmentType
	}
	return amount * rate, nil
}

// ValidInvestmentType reports whether t is one of the offered types.
func ValidInvestmentType(t string) bool {
	_, ok := annualRates[t]
	return ok
}

// ValidInvestmentStatus reports whether s is a known lifecycle status.
func ValidInvestmentStatus(s string) bool {
	switch s {
	case InvestmentPending, InvestmentActive, InvestmentCompleted, InvestmentCancelled:
		return true
	}
	return false
}

// MaturityDate returns the end date for an investment started at start and
// running for the given number of months, using calendar month arithmetic.
func MaturityDate(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// RemainingDays returns whole days until the end date, never negative.
func (i *Investment) RemainingDays(now time.Time) int {
	diff := i.EndDate.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Progress returns the elapsed share of the investment window as a 0-100
// percentage: 100 once past the end date, 0 before the start.
func (i *Investment) Progress(now time.Time) int {
	if !now.Before(i.EndDate) {
		return 100
	}
	if !now.After(i.StartDate) {
		return 0
	}
	total := i.EndDate.Sub(i.StartDate)
	elapsed := now.Sub(i.StartDate)
	pct := int(math.Round(float64(elapsed) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}
