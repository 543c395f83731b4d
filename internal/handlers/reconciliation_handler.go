package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sales-reconciliation-backend/internal/config"
	"sales-reconciliation-backend/internal/models"
	"sales-reconciliation-backend/internal/repository"
	service "sales-reconciliation-backend/internal/services/reconciliation"
	"sales-reconciliation-backend/internal/services/timekey"
)

type ReconciliationHandler struct {
	service *service.Service
	loader  repository.TableLoader
	cfg     *config.Config
}

func NewReconciliationHandler(s *service.Service, loader repository.TableLoader, cfg *config.Config) *ReconciliationHandler {
	return &ReconciliationHandler{service: s, loader: loader, cfg: cfg}
}

// Run reconciles the uploaded monetary exports and responds with the
// bucketed rows plus footer sums.
func (h *ReconciliationHandler) Run(c *gin.Context) {
	runID := uuid.New()

	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}

	req, ok := h.loadSources(c, opts)
	if !ok {
		return
	}

	result, err := h.service.Reconcile(req)
	if err != nil {
		h.renderError(c, runID, err)
		return
	}

	log.Printf("run %s: reconciled %d buckets (online=%t offline=%t report=%t)",
		runID, len(result.Rows), result.Footer.HasOnline, result.Footer.HasOffline, result.Footer.HasReport)

	c.JSON(http.StatusOK, gin.H{
		"run_id": runID.String(),
		"rows":   result.Rows,
		"footer": result.Footer,
	})
}

// Products reconciles the item-quantity variants of the same exports at
// per-product granularity.
func (h *ReconciliationHandler) Products(c *gin.Context) {
	runID := uuid.New()

	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}

	req, ok := h.loadSources(c, opts)
	if !ok {
		return
	}

	result, err := h.service.ReconcileProducts(req)
	if err != nil {
		h.renderError(c, runID, err)
		return
	}

	log.Printf("run %s: reconciled %d product rows (online=%t offline=%t report=%t)",
		runID, len(result.Rows), result.Footer.HasOnline, result.Footer.HasOffline, result.Footer.HasReport)

	c.JSON(http.StatusOK, gin.H{
		"run_id": runID.String(),
		"rows":   result.Rows,
		"footer": result.Footer,
	})
}

func (h *ReconciliationHandler) parseOptions(c *gin.Context) (service.Options, bool) {
	mode := models.Mode(strings.ToLower(strings.TrimSpace(c.PostForm("mode"))))
	if mode == "" {
		mode = models.ModeHourly
	}
	if mode != models.ModeHourly && mode != models.ModeDaily {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be hourly or daily"})
		return service.Options{}, false
	}

	cutoff := c.PostForm("cutoff")
	if cutoff == "" {
		cutoff = h.cfg.DefaultCutoff
	}

	policy := service.StatusPolicy(strings.ToLower(strings.TrimSpace(c.PostForm("status_policy"))))
	if policy == "" {
		policy = service.StatusPolicy(h.cfg.OnlineStatusPolicy)
	}
	if policy != service.PolicyStrict && policy != service.PolicyPermissive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status_policy must be strict or permissive"})
		return service.Options{}, false
	}

	return service.Options{
		Mode:         mode,
		CutoffHour:   timekey.ResolveCutoff(cutoff),
		StatusPolicy: policy,
	}, true
}

// loadSources parses the uploaded files into tables. At least one of the
// online and offline exports must be present; the report is optional.
func (h *ReconciliationHandler) loadSources(c *gin.Context, opts service.Options) (service.Request, bool) {
	req := service.Request{Options: opts}

	var ok bool
	if req.Online, ok = h.loadFile(c, "online_csv"); !ok {
		return req, false
	}
	if req.Offline, ok = h.loadFile(c, "offline_csv"); !ok {
		return req, false
	}
	if req.Report, ok = h.loadFile(c, "report_csv"); !ok {
		return req, false
	}

	if req.Online == nil && req.Offline == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload at least one of online_csv or offline_csv"})
		return req, false
	}
	return req, true
}

// loadFile returns a nil table when the field was not uploaded. Oversized
// uploads answer with a 413, any parse failure with a 400.
func (h *ReconciliationHandler) loadFile(c *gin.Context, field string) (*models.Table, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload " + field})
		return nil, false
	}

	if maxBytes := h.cfg.MaxUploadMB << 20; maxBytes > 0 && fileHeader.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("%s exceeds the %dMB upload limit", field, h.cfg.MaxUploadMB),
		})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open upload " + fileHeader.Filename})
		return nil, false
	}
	defer file.Close()

	table, err := h.loader.Load(file, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return table, true
}

// renderError maps source-level processing failures to 422 so the caller
// can tell a bad export apart from a bad request.
func (h *ReconciliationHandler) renderError(c *gin.Context, runID uuid.UUID, err error) {
	var srcErr *service.SourceError
	if errors.As(err, &srcErr) {
		log.Printf("run %s: %v", runID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	log.Printf("run %s: internal error: %v", runID, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
}
