package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/medstock/medstock/internal/ingest"
	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/internal/medicinal/usecase/command"
	"github.com/medstock/medstock/internal/medicinal/usecase/query"
	"github.com/medstock/medstock/pkg/logger"
)

// maxUploadSize bounds multipart uploads (spreadsheet exports are small).
const maxUploadSize = 16 << 20 // 16 MB

// MedicinalHandler handles HTTP requests for the medicinal catalog
type MedicinalHandler struct {
	createHandler  *command.CreateMedicinalHandler
	updateHandler  *command.UpdateMedicinalHandler
	deleteHandler  *command.DeleteMedicinalHandler
	recoverHandler *command.RecoverMedicinalHandler
	importHandler  *command.ImportRecordsHandler

	getHandler      *query.GetMedicinalHandler
	listHandler     *query.ListMedicinalHandler
	expiringHandler *query.ExpiringMedicinalHandler
	exportHandler   *query.ExportMedicinalHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	rowsIngested   *prometheus.CounterVec
}

// NewMedicinalHandler creates a new medicinal handler
func NewMedicinalHandler(repo domain.MedicinalRepository, events command.ImportEventPublisher) *MedicinalHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medstock_requests_total",
			Help: "Total number of requests to the medicinal API",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medstock_request_duration_seconds",
			Help:    "Duration of medicinal API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	rowsIngested := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medstock_upload_rows_total",
			Help: "Upload ingestion row outcomes",
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(rowsIngested)

	return &MedicinalHandler{
		createHandler:   command.NewCreateMedicinalHandler(repo),
		updateHandler:   command.NewUpdateMedicinalHandler(repo),
		deleteHandler:   command.NewDeleteMedicinalHandler(repo),
		recoverHandler:  command.NewRecoverMedicinalHandler(repo),
		importHandler:   command.NewImportRecordsHandler(repo, events),
		getHandler:      query.NewGetMedicinalHandler(repo),
		listHandler:     query.NewListMedicinalHandler(repo),
		expiringHandler: query.NewExpiringMedicinalHandler(repo),
		exportHandler:   query.NewExportMedicinalHandler(repo),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		rowsIngested:    rowsIngested,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *MedicinalHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type medicinalRequest struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	BatchNumber string `json:"batch_number"`
	Spec        string `json:"spec"`
	Count       string `json:"count"`
	Validity    string `json:"validity"`
}

// Create handles POST /api/medicinals
func (h *MedicinalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req medicinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	validity, err := ingest.ParseDate(req.Validity)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid validity date"})
		return
	}

	m, err := h.createHandler.Handle(command.CreateMedicinalCommand{
		Category:    req.Category,
		Name:        req.Name,
		BatchNumber: req.BatchNumber,
		Spec:        req.Spec,
		Count:       req.Count,
		Validity:    validity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create medicinal")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Medicinal created successfully",
		Data:    m,
	})
}

// Get handles GET /api/medicinals/{id}
func (h *MedicinalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	m, err := h.getHandler.Handle(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Medicinal not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: m})
}

// List handles GET /api/medicinals
func (h *MedicinalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	isDel := r.URL.Query().Get("is_del") == "true"

	result, err := h.listHandler.Handle(query.ListMedicinalQuery{
		Keyword:  r.URL.Query().Get("keyword"),
		IsDel:    isDel,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list medicinals")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list medicinals"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Update handles PUT /api/medicinals/{id}
func (h *MedicinalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req medicinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.UpdateMedicinalCommand{
		ID:          id,
		Category:    req.Category,
		Name:        req.Name,
		BatchNumber: req.BatchNumber,
		Spec:        req.Spec,
		Count:       req.Count,
	}
	if req.Validity != "" {
		validity, err := ingest.ParseDate(req.Validity)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid validity date"})
			return
		}
		cmd.Validity = validity
	}

	m, err := h.updateHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update medicinal")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Medicinal updated successfully",
		Data:    m,
	})
}

// Delete handles DELETE /api/medicinals/{id}
func (h *MedicinalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(id); err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Medicinal deleted successfully"})
}

// Recover handles POST /api/medicinals/{id}/recover
func (h *MedicinalHandler) Recover(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.recoverHandler.Handle(id); err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Medicinal recovered successfully"})
}

// Expiring handles GET /api/medicinals/expiring
func (h *MedicinalHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	result, err := h.expiringHandler.Handle(query.ExpiringMedicinalQuery{Days: days})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to query expiring medicinals")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to query expiring medicinals"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Export handles GET /api/medicinals/export
func (h *MedicinalHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.exportHandler.Handle()
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to export catalog")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to export catalog"})
		return
	}

	filename := "medicinals_" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(w); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to stream export")
	}
}

// Upload handles POST /api/medicinals/upload
func (h *MedicinalHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Failed to read upload"})
		return
	}

	summary, err := h.importHandler.Handle(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, command.ErrUnsupportedFormat) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Str("filename", header.Filename).Msg("Upload ingestion failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Upload ingestion failed"})
		return
	}

	h.rowsIngested.WithLabelValues("attempted").Add(float64(summary.Attempted))
	h.rowsIngested.WithLabelValues("accepted").Add(float64(summary.Accepted))
	h.rowsIngested.WithLabelValues("created").Add(float64(summary.Created))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Upload ingested",
		Data:    summary,
	})
}

// RegisterRoutes registers all medicinal routes. Specific paths are
// registered before the {id} routes so mux matches them first.
func (h *MedicinalHandler) RegisterRoutes(router *mux.Router, protect func(http.HandlerFunc) http.HandlerFunc) {
	if protect == nil {
		protect = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	router.HandleFunc("/api/medicinals/expiring", h.metricsMiddleware("/api/medicinals/expiring", protect(h.Expiring))).Methods("GET")
	router.HandleFunc("/api/medicinals/export", h.metricsMiddleware("/api/medicinals/export", protect(h.Export))).Methods("GET")
	router.HandleFunc("/api/medicinals/upload", h.metricsMiddleware("/api/medicinals/upload", protect(h.Upload))).Methods("POST")
	router.HandleFunc("/api/medicinals", h.metricsMiddleware("/api/medicinals", protect(h.List))).Methods("GET")
	router.HandleFunc("/api/medicinals", h.metricsMiddleware("/api/medicinals", protect(h.Create))).Methods("POST")
	router.HandleFunc("/api/medicinals/{id}", h.metricsMiddleware("/api/medicinals/{id}", protect(h.Get))).Methods("GET")
	router.HandleFunc("/api/medicinals/{id}", h.metricsMiddleware("/api/medicinals/{id}", protect(h.Update))).Methods("PUT")
	router.HandleFunc("/api/medicinals/{id}", h.metricsMiddleware("/api/medicinals/{id}", protect(h.Delete))).Methods("DELETE")
	router.HandleFunc("/api/medicinals/{id}/recover", h.metricsMiddleware("/api/medicinals/{id}/recover", protect(h.Recover))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *MedicinalHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Medstock service is healthy",
		})
	}).Methods("GET")
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid medicinal ID"})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
