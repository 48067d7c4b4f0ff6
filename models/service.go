package models

import "time"

// Service catalog categories, in display order.
var ServiceCategories = []string{
	"photocopy",
	"computer_training",
	"project_management",
	"digital_marketing",
	"web_development",
	"social_media",
	"marketing",
	"video_editing",
	"video_coverage",
	"other",
}

// Service lifecycle statuses. "archived" is the soft-delete state: archived
// services stay fetchable by id but are excluded from listings.
const (
	ServiceActive   = "active"
	ServiceArchived = "archived"
)

type Service struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"type:enum('photocopy','computer_training','project_management','digital_marketing','web_development','social_media','marketing','video_editing','video_coverage','other');not null;index:idx_services_category_status" json:"category"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Currency    string         `gorm:"type:enum('NGN','USD');default:'NGN'" json:"currency"`
	Duration    string         `gorm:"size:100" json:"duration"`
	Features    []string       `gorm:"serializer:json" json:"features"`
	Status      string         `gorm:"type:enum('active','archived');default:'active';index:idx_services_category_status" json:"status"`
	Images      []ServiceImage `gorm:"foreignKey:ServiceID" json:"images,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

type ServiceImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ServiceID uint      `gorm:"not null;index" json:"service_id"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	PublicID  string    `gorm:"size:255;not null" json:"public_id"`
	Caption   string    `gorm:"size:255" json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

func (ServiceImage) TableName() string {
	return "service_images"
}

// ValidServiceCategory reports whether c is one of the fixed categories.
func ValidServiceCategory(c string) bool {
	for _, known := range ServiceCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Archive soft-deletes the service. It returns false when the service was
// already archived.
func (s *Service) Archive() bool {
	if s.Status == ServiceArchived {
		return false
	}
	s.Status = ServiceArchived
	return true
}

// CategoryStat is one entry of the category breakdown returned by the
// catalog, covering every fixed category even when its count is zero.
type CategoryStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MergeCategoryCounts folds per-category counts of active services into the
// fixed category list so empty categories still appear with count 0.
func MergeCategoryCounts(counts map[string]int64) []CategoryStat {
	stats := make([]CategoryStat, 0, len(ServiceCategories))
	for _, cat := range ServiceCategories {
		stats = append(stats, CategoryStat{
			Value: cat,
			Label: CategoryLabel(cat),
			Count: counts[cat],
		})
	}
	return stats
}

// CategoryLabel turns a category value into its display label, e.g.
// "computer_training" -> "Computer Training".
func CategoryLabel(category string) string {
	out := []byte(category)
	upper := true
	for i := 0; i < len(out); i++ {
		switch {
		case out[i] == '_':
			out[i] = ' '
			upper = true
		case upper && out[i] >= 'a' && out[i] <= 'z':
			out[i] -= 'a' - 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(out)
}
