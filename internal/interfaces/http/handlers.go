package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/ai"
	"github.com/Aurelio-One/p9/internal/domain/bill"
	"github.com/Aurelio-One/p9/internal/infrastructure/persistence/repository"
	"github.com/Aurelio-One/p9/internal/infrastructure/storage"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	bills    *repository.BillRepository
	receipts *storage.ReceiptStorage
	auditor  *ai.Auditor
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	bills *repository.BillRepository,
	receipts *storage.ReceiptStorage,
	auditor *ai.Auditor,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bills:    bills,
		receipts: receipts,
		auditor:  auditor,
		logger:   logger,
	}
}

// HealthCheck returns server health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListBills returns all bills in insertion order.
func (h *Handlers) ListBills(c *gin.Context) {
	bills, err := h.bills.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list bills", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bills"})
		return
	}
	if bills == nil {
		bills = []bill.Bill{}
	}
	c.JSON(http.StatusOK, bills)
}

// CreateBill accepts a multipart receipt upload, stores the file and
// creates the skeleton bill record. The response carries the file URL and
// the key the client submits the remaining fields under.
func (h *Handlers) CreateBill(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing receipt file"})
		return
	}
	email := c.PostForm("email")

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable receipt file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable receipt file"})
		return
	}

	key, fileURL, err := h.receipts.Save(fileHeader.Filename, content)
	if err != nil {
		h.logger.Error("Failed to store receipt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store receipt"})
		return
	}

	if err := h.bills.CreateStaged(c.Request.Context(), key, email, fileURL, fileHeader.Filename); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create bill"})
		return
	}

	h.logger.Info("Bill created",
		zap.String("key", key),
		zap.String("email", email),
		zap.String("file_name", fileHeader.Filename))

	c.JSON(http.StatusCreated, gin.H{
		"fileUrl": fileURL,
		"key":     key,
	})
}

// UpdateBill fills in the remaining fields of a staged bill.
func (h *Handlers) UpdateBill(c *gin.Context) {
	var payload bill.Bill
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill payload"})
		return
	}
	payload.ID = c.Param("id")

	updated, err := h.bills.Update(c.Request.Context(), payload)
	if errors.Is(err, repository.ErrBillNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update bill"})
		return
	}

	// Advisory only; the audit outcome never blocks persistence.
	if h.auditor != nil {
		go h.auditBill(updated)
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) auditBill(b bill.Bill) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := h.auditor.AuditBill(ctx, b)
	if err != nil {
		h.logger.Warn("Bill audit failed",
			zap.String("bill_id", b.ID),
			zap.Error(err))
		return
	}

	h.logger.Info("Bill audited",
		zap.String("bill_id", b.ID),
		zap.String("decision", result.Decision),
		zap.Float64("confidence", result.Confidence),
		zap.Strings("reasons", result.Reasons))
}
