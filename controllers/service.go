package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// ServiceController owns the service catalog endpoints. Reads are public;
// writes require an authenticated session.
type ServiceController struct {
	DB    *gorm.DB
	Files *utils.FileStore
}

func NewServiceController(db *gorm.DB, files *utils.FileStore) *ServiceController {
	return &ServiceController{DB: db, Files: files}
}

type createServiceRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"omitempty,oneof=NGN USD"`
	Duration    string   `json:"duration" validate:"omitempty,max=100"`
	Features    []string `json:"features"`
	// FeaturesCSV accepts the comma-separated form some clients send.
	FeaturesCSV string `json:"features_csv" validate:"omitempty"`
}

type updateServiceRequest struct {
	Title       string   `json:"title" validate:"omitempty,min=3,max=200"`
	Description string   `json:"description" validate:"omitempty,min=10"`
	Category    string   `json:"category" validate:"omitempty"`
	Price       *float64 `json:"price" validate:"omitempty"`
	Currency    string   `json:"currency" validate:"omitempty,oneof=NGN USD"`
	Duration    string   `json:"duration" validate:"omitempty,max=100"`
	Features    []string `json:"features"`
}

// Create adds a service to the catalog.
func (c *ServiceController) Create(w http.ResponseWriter, r *http.Request) {
	var req createServiceRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	if !models.ValidServiceCategory(req.Category) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category"})
		return
	}

	features := req.Features
	if len(features) == 0 && req.FeaturesCSV != "" {
		for _, f := range strings.Split(req.FeaturesCSV, ",") {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}

	service := models.Service{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Currency:    currency,
		Duration:    req.Duration,
		Features:    features,
		Status:      models.ServiceActive,
	}
	if err := c.DB.Create(&service).Error; err != nil {
		log.Printf("[services] create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Service created successfully",
		Data:    map[string]interface{}{"service": service},
	})
}

// List returns active services with category filtering, text search over
// title and description, and page/limit pagination.
func (c *ServiceController) List(w http.ResponseWriter, r *http.Request) {
	q := c.DB.Model(&models.Service{}).Where("status = ?", models.ServiceActive)

	if cat := r.URL.Query().Get("category"); cat != "" {
		if !models.ValidServiceCategory(cat) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category"})
			return
		}
		q = q.Where("category = ?", cat)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	if limit > 100 {
		limit = 100
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[services] count failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var services []models.Service
	if err := q.Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&services).Error; err != nil {
		log.Printf("[services] list failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"services":   services,
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// Get returns one service by id. Archived services are still returned so
// existing links keep working.
func (c *ServiceController) Get(w http.ResponseWriter, r *http.Request) {
	service, done := c.find(w, r)
	if done {
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data:    map[string]interface{}{"service": service},
	})
}

// Update patches the provided fields of a service.
func (c *ServiceController) Update(w http.ResponseWriter, r *http.Request) {
	var req updateServiceRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	service, done := c.find(w, r)
	if done {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		if !models.ValidServiceCategory(req.Category) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category"})
			return
		}
		updates["category"] = req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Price must be greater than 0"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.Duration != "" {
		updates["duration"] = req.Duration
	}
	if req.Features != nil {
		service.Features = req.Features
		if err := c.DB.Model(service).Update("features", service.Features).Error; err != nil {
			log.Printf("[services] features update failed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
	}
	if len(updates) > 0 {
		if err := c.DB.Model(service).Updates(updates).Error; err != nil {
			log.Printf("[services] update failed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Service updated successfully",
		Data:    map[string]interface{}{"service": service},
	})
}

// Delete archives a service. The row and its images are kept; the service
// simply disappears from listings.
func (c *ServiceController) Delete(w http.ResponseWriter, r *http.Request) {
	service, done := c.find(w, r)
	if done {
		return
	}

	if !service.Archive() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Service is already deleted"})
		return
	}
	if err := c.DB.Model(service).Update("status", models.ServiceArchived).Error; err != nil {
		log.Printf("[services] archive failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Service deleted successfully",
	})
}

// Categories returns the fixed category list with active-service counts,
// including zero-count categories.
func (c *ServiceController) Categories(w http.ResponseWriter, r *http.Request) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	if err := c.DB.Model(&models.Service{}).
		Select("category, COUNT(*) AS count").
		Where("status = ?", models.ServiceActive).
		Group("category").
		Scan(&rows).Error; err != nil {
		log.Printf("[services] categories failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data:    map[string]interface{}{"categories": models.MergeCategoryCounts(counts)},
	})
}

// UploadImages attaches up to 5 images to a service.
func (c *ServiceController) UploadImages(w http.ResponseWriter, r *http.Request) {
	if c.Files == nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{Success: false, Message: "File storage is not configured"})
		return
	}

	service, done := c.find(w, r)
	if done {
		return
	}

	if err := r.ParseMultipartForm(utils.MaxUploadBytes * utils.MaxFilesPerForm); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}
	files, err := utils.ReadMultipartFiles(r, "images", utils.MaxFilesPerForm, utils.ImageExtensions)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if len(files) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No images uploaded"})
		return
	}

	images := make([]models.ServiceImage, 0, len(files))
	for _, f := range files {
		stored, err := c.Files.UploadBuffer(r.Context(), f.Data, "konze/services", f.Name)
		if err != nil {
			log.Printf("[services] image upload failed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Image upload failed"})
			return
		}
		images = append(images, models.ServiceImage{
			ServiceID: service.ID,
			URL:       stored.URL,
			PublicID:  stored.PublicID,
			Caption:   f.Name,
		})
	}

	if err := c.DB.Create(&images).Error; err != nil {
		log.Printf("[services] image persist failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Images uploaded successfully",
		Data:    map[string]interface{}{"images": images},
	})
}

// DeleteImage removes one image from storage and the database.
func (c *ServiceController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	service, done := c.find(w, r)
	if done {
		return
	}

	imageID, err := strconv.ParseUint(mux.Vars(r)["imageId"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid image id"})
		return
	}

	var image models.ServiceImage
	err = c.DB.Where("id = ? AND service_id = ?", imageID, service.ID).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Image not found"})
			return
		}
		log.Printf("[services] image lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if c.Files != nil {
		if err := c.Files.Delete(r.Context(), image.PublicID); err != nil {
			log.Printf("[services] storage delete failed for %s: %v", image.PublicID, err)
		}
	}
	if err := c.DB.Delete(&image).Error; err != nil {
		log.Printf("[services] image delete failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Image deleted successfully",
	})
}

func (c *ServiceController) find(w http.ResponseWriter, r *http.Request) (*models.Service, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid service id"})
		return nil, true
	}

	var service models.Service
	err = c.DB.Preload("Images").First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Service not found"})
			return nil, true
		}
		log.Printf("[services] lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return nil, true
	}
	return &service, false
}

// queryInt reads a positive integer query param with a default.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
