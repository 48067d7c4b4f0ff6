package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// ContactMailer is the slice of the mail service the contact intake needs.
type ContactMailer interface {
	SendContactConfirmation(email, name, subject string) error
}

// ContactController owns the public contact intake and the authenticated
// inbox management endpoints.
type ContactController struct {
	DB    *gorm.DB
	Files *utils.FileStore
	Mail  ContactMailer
}

func NewContactController(db *gorm.DB, files *utils.FileStore, mail ContactMailer) *ContactController {
	return &ContactController{DB: db, Files: files, Mail: mail}
}

type contactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=10"`
}

type updateContactStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create receives a public contact message with optional attachments. The
// form is multipart; attachments are uploaded before the row is persisted
// and are not rolled back if persistence fails.
func (c *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(utils.MaxUploadBytes * utils.MaxFilesPerForm); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}

	form := contactForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}
	if err := middleware.ValidateStruct(w, &form); err != nil {
		return
	}

	var files []utils.UploadedFile
	if c.Files != nil {
		var err error
		files, err = utils.ReadMultipartFiles(r, "attachments", utils.MaxFilesPerForm, utils.AttachmentExtensions)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
			return
		}
	}

	msg := models.ContactMessage{
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		Status:    models.ContactNew,
		IPAddress: middleware.GetClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if form.Phone != "" {
		msg.Phone = &form.Phone
	}

	for _, f := range files {
		stored, err := c.Files.UploadBuffer(r.Context(), f.Data, "konze/contacts", f.Name)
		if err != nil {
			log.Printf("[contact] attachment upload failed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Attachment upload failed"})
			return
		}
		msg.Attachments = append(msg.Attachments, models.ContactAttachment{
			URL:         stored.URL,
			PublicID:    stored.PublicID,
			Name:        f.Name,
			ContentType: f.ContentType,
			Size:        f.Size,
		})
	}

	if err := c.DB.Create(&msg).Error; err != nil {
		log.Printf("[contact] create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if c.Mail != nil {
		if err := c.Mail.SendContactConfirmation(msg.Email, msg.Name, msg.Subject); err != nil {
			log.Printf("[contact] confirmation email to %s failed: %v", msg.Email, err)
		}
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Thank you for contacting us! We will get back to you soon.",
		Data:    map[string]interface{}{"contactId": msg.ID},
	})
}

// List returns contact messages with status filtering and pagination,
// newest first.
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	q := c.DB.Model(&models.ContactMessage{})

	if s := r.URL.Query().Get("status"); s != "" {
		if !models.ValidContactStatus(s) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status"})
			return
		}
		q = q.Where("status = ?", s)
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[contact] count failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var messages []models.ContactMessage
	if err := q.Preload("Attachments").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error; err != nil {
		log.Printf("[contact] list failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"messages":   messages,
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// Get returns one message. Fetching a new message marks it read; the
// transition happens only once.
func (c *ContactController) Get(w http.ResponseWriter, r *http.Request) {
	msg, done := c.find(w, r)
	if done {
		return
	}

	if msg.MarkRead() {
		if err := c.DB.Model(msg).Update("status", models.ContactRead).Error; err != nil {
			log.Printf("[contact] mark-read failed: %v", err)
			// The fetch still succeeds; the transition retries next time.
			msg.Status = models.ContactNew
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data:    map[string]interface{}{"message": msg},
	})
}

// UpdateStatus moves a message through the triage lifecycle.
func (c *ContactController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateContactStatusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if !models.ValidContactStatus(req.Status) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status"})
		return
	}

	msg, done := c.find(w, r)
	if done {
		return
	}

	if err := c.DB.Model(msg).Update("status", req.Status).Error; err != nil {
		log.Printf("[contact] status update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Contact status updated successfully",
		Data:    map[string]interface{}{"message": msg},
	})
}

// Delete removes a message and best-effort deletes its stored attachments.
func (c *ContactController) Delete(w http.ResponseWriter, r *http.Request) {
	msg, done := c.find(w, r)
	if done {
		return
	}

	if c.Files != nil {
		for _, att := range msg.Attachments {
			if err := c.Files.Delete(r.Context(), att.PublicID); err != nil {
				log.Printf("[contact] attachment delete failed for %s: %v", att.PublicID, err)
			}
		}
	}

	if err := c.DB.Select("Attachments").Delete(msg).Error; err != nil {
		log.Printf("[contact] delete failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Contact message deleted successfully",
	})
}

// Stats summarizes the inbox: total, today, this week and per-status counts.
func (c *ContactController) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	var total, today, thisWeek int64
	if err := c.DB.Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		log.Printf("[contact] stats total failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := c.DB.Model(&models.ContactMessage{}).Where("created_at >= ?", startOfDay).Count(&today).Error; err != nil {
		log.Printf("[contact] stats today failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := c.DB.Model(&models.ContactMessage{}).Where("created_at >= ?", startOfWeek).Count(&thisWeek).Error; err != nil {
		log.Printf("[contact] stats week failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := c.DB.Model(&models.ContactMessage{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		log.Printf("[contact] stats breakdown failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	byStatus := map[string]int64{
		models.ContactNew:      0,
		models.ContactRead:     0,
		models.ContactReplied:  0,
		models.ContactArchived: 0,
	}
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"total":    total,
			"today":    today,
			"thisWeek": thisWeek,
			"byStatus": byStatus,
		},
	})
}

func (c *ContactController) find(w http.ResponseWriter, r *http.Request) (*models.ContactMessage, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid contact id"})
		return nil, true
	}

	var msg models.ContactMessage
	err = c.DB.Preload("Attachments").First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Contact message not found"})
			return nil, true
		}
		log.Printf("[contact] lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return nil, true
	}
	return &msg, false
}
