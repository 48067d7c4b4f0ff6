package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/database"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// InvestmentController owns the investment CRUD, stats and document
// endpoints. Every query is scoped to the authenticated user.
type InvestmentController struct {
	DB    *gorm.DB
	Files *utils.FileStore
}

func NewInvestmentController(db *gorm.DB, files *utils.FileStore) *InvestmentController {
	return &InvestmentController{DB: db, Files: files}
}

type createInvestmentRequest struct {
	Type           string  `json:"type" validate:"required"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Currency       string  `json:"currency" validate:"omitempty,oneof=NGN USD"`
	DurationMonths int     `json:"duration_months" validate:"omitempty,min=1,max=120"`
}

type updateInvestmentRequest struct {
	Status string `json:"status" validate:"required"`
}

const minInvestmentAmount = 500

// Create opens a pending investment. The expected return and maturity date
// are fixed here; the transaction id is retried once on a key collision.
func (c *InvestmentController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	var req createInvestmentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	if !models.ValidInvestmentType(req.Type) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment type"})
		return
	}
	if req.Amount < minInvestmentAmount {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Minimum investment amount is 500"})
		return
	}

	expected, err := models.ExpectedReturn(req.Type, req.Amount)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment type"})
		return
	}

	months := req.DurationMonths
	if months == 0 {
		months = 12
	}
	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}

	start := time.Now()
	investment := models.Investment{
		UserID:         userID,
		Type:           req.Type,
		Amount:         req.Amount,
		Currency:       currency,
		Status:         models.InvestmentPending,
		ExpectedReturn: expected,
		StartDate:      start,
		EndDate:        models.MaturityDate(start, months),
		TransactionID:  utils.GenerateTransactionID(),
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&investment).Error; err != nil {
			if database.IsDuplicateKey(err) {
				// Transaction id collision is astronomically unlikely but cheap to retry.
				investment.TransactionID = utils.GenerateTransactionID()
				return tx.Create(&investment).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("[investments] create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investment created successfully",
		Data:    map[string]interface{}{"investment": investment},
	})
}

// List returns the caller's investments, optionally filtered by type and
// status, newest first.
func (c *InvestmentController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	q := c.DB.Where("user_id = ?", userID)
	if t := r.URL.Query().Get("type"); t != "" {
		if !models.ValidInvestmentType(t) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment type"})
			return
		}
		q = q.Where("type = ?", t)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !models.ValidInvestmentStatus(s) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status"})
			return
		}
		q = q.Where("status = ?", s)
	}

	var investments []models.Investment
	if err := q.Preload("Documents").Order("created_at DESC").Find(&investments).Error; err != nil {
		log.Printf("[investments] list failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"count":       len(investments),
			"investments": investments,
		},
	})
}

// Get returns one investment with derived progress fields. Other users'
// investments look like missing ones.
func (c *InvestmentController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	investment, done := c.findOwned(w, r, userID)
	if done {
		return
	}

	now := time.Now()
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"investment":     investment,
			"remaining_days": investment.RemainingDays(now),
			"progress":       investment.Progress(now),
		},
	})
}

// Update changes the investment status. Amounts, rates and dates are fixed
// at creation and cannot be edited.
func (c *InvestmentController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	var req updateInvestmentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if !models.ValidInvestmentStatus(req.Status) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status"})
		return
	}

	investment, done := c.findOwned(w, r, userID)
	if done {
		return
	}

	if err := c.DB.Model(investment).Update("status", req.Status).Error; err != nil {
		log.Printf("[investments] update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Investment updated successfully",
		Data:    map[string]interface{}{"investment": investment},
	})
}

// Stats aggregates the caller's portfolio: counts, totals and a status
// breakdown. Expected return totals only cover active investments.
func (c *InvestmentController) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	var total int64
	if err := c.DB.Model(&models.Investment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		log.Printf("[investments] stats count failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	type sums struct {
		TotalAmount         float64
		TotalExpectedReturn float64
	}
	var s sums
	if err := c.DB.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount),0) AS total_amount, COALESCE(SUM(CASE WHEN status = ? THEN expected_return ELSE 0 END),0) AS total_expected_return", models.InvestmentActive).
		Where("user_id = ?", userID).
		Scan(&s).Error; err != nil {
		log.Printf("[investments] stats sums failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := c.DB.Model(&models.Investment{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		log.Printf("[investments] stats breakdown failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	breakdown := map[string]int64{
		models.InvestmentPending:   0,
		models.InvestmentActive:    0,
		models.InvestmentCompleted: 0,
		models.InvestmentCancelled: 0,
	}
	for _, row := range rows {
		breakdown[row.Status] = row.Count
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"totalInvestments":    total,
			"totalAmount":         s.TotalAmount,
			"totalExpectedReturn": s.TotalExpectedReturn,
			"statusBreakdown":     breakdown,
		},
	})
}

// UploadDocuments attaches up to 5 documents to an investment.
func (c *InvestmentController) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}
	if c.Files == nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{Success: false, Message: "File storage is not configured"})
		return
	}

	investment, done := c.findOwned(w, r, userID)
	if done {
		return
	}

	if err := r.ParseMultipartForm(utils.MaxUploadBytes * utils.MaxFilesPerForm); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}
	files, err := utils.ReadMultipartFiles(r, "documents", utils.MaxFilesPerForm, utils.DocumentExtensions)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if len(files) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No documents uploaded"})
		return
	}

	docs := make([]models.InvestmentDocument, 0, len(files))
	for _, f := range files {
		stored, err := c.Files.UploadBuffer(r.Context(), f.Data, "konze/investments", f.Name)
		if err != nil {
			log.Printf("[investments] document upload failed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Document upload failed"})
			return
		}
		docs = append(docs, models.InvestmentDocument{
			InvestmentID: investment.ID,
			URL:          stored.URL,
			PublicID:     stored.PublicID,
			Name:         f.Name,
			ContentType:  f.ContentType,
			Size:         f.Size,
		})
	}

	if err := c.DB.Create(&docs).Error; err != nil {
		log.Printf("[investments] document persist failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Documents uploaded successfully",
		Data:    map[string]interface{}{"documents": docs},
	})
}

// DeleteDocument removes one document from storage and the database.
func (c *InvestmentController) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	investment, done := c.findOwned(w, r, userID)
	if done {
		return
	}

	docID, err := strconv.ParseUint(mux.Vars(r)["docId"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid document id"})
		return
	}

	var doc models.InvestmentDocument
	err = c.DB.Where("id = ? AND investment_id = ?", docID, investment.ID).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Document not found"})
			return
		}
		log.Printf("[investments] document lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if c.Files != nil {
		if err := c.Files.Delete(r.Context(), doc.PublicID); err != nil {
			log.Printf("[investments] storage delete failed for %s: %v", doc.PublicID, err)
		}
	}
	if err := c.DB.Delete(&doc).Error; err != nil {
		log.Printf("[investments] document delete failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Document deleted successfully",
	})
}

// findOwned loads the investment in the route scoped to the owner, writing
// the error response itself. done is true when a response was written.
func (c *InvestmentController) findOwned(w http.ResponseWriter, r *http.Request, userID uint) (*models.Investment, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment id"})
		return nil, true
	}

	var investment models.Investment
	err = c.DB.Preload("Documents").Where("id = ? AND user_id = ?", id, userID).First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return nil, true
		}
		log.Printf("[investments] lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return nil, true
	}
	return &investment, false
}
