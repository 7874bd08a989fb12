package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roster-mahasiswa/internal/exporter"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stemsi/roster-mahasiswa/internal/repository"
	"github.com/stemsi/roster-mahasiswa/internal/response"
	"github.com/stemsi/roster-mahasiswa/internal/service"
	"github.com/stemsi/roster-mahasiswa/internal/validator"
)

// duplicateNPMFields is the inline error shown when the NPM is already registered.
var duplicateNPMFields = map[string]string{"npm": "NPM sudah terdaftar!"}

// RosterHandler serves the JSON API over the roster.
type RosterHandler struct {
	rosterService *service.RosterService
	exportService *service.ExportService
	notifier      *Notifier
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(
	rosterService *service.RosterService,
	exportService *service.ExportService,
	notifier *Notifier,
) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		exportService: exportService,
		notifier:      notifier,
	}
}

// ValidateFieldRequest asks for a single-field check.
type ValidateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ValidateFieldResponse is the live-feedback verdict for one field.
type ValidateFieldResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ListStudents godoc
// GET /api/v1/students
// Returns every record in insertion order with the roster stats.
func (h *RosterHandler) ListStudents(c *gin.Context) {
	snap := h.rosterService.Snapshot()
	if snap.Students == nil {
		snap.Students = []model.Student{}
	}
	response.Success(c, http.StatusOK, snap)
}

// GetStats godoc
// GET /api/v1/students/stats
func (h *RosterHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"stats": h.rosterService.Stats()})
}

// CreateStudent godoc
// POST /api/v1/students
// Validates and appends a new record.
func (h *RosterHandler) CreateStudent(c *gin.Context) {
	var form model.StudentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	student, err := h.rosterService.Add(form)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, ve.Fields)
		case errors.Is(err, repository.ErrDuplicateNPM):
			response.FailWithFields(c, http.StatusConflict, response.ErrConflict, duplicateNPMFields)
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.SuccessWithNotice(c, http.StatusCreated, gin.H{"student": student}, h.notifier.For(NoticeAdded))
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
// Removes one record; an unknown id leaves the roster unchanged.
func (h *RosterHandler) DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.rosterService.Remove(id) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.SuccessWithNotice(c, http.StatusOK, gin.H{"id": id}, h.notifier.For(NoticeDeleted))
}

// ClearStudents godoc
// DELETE /api/v1/students
// Empties the roster. An empty roster is reported, not treated as success.
func (h *RosterHandler) ClearStudents(c *gin.Context) {
	n, err := h.rosterService.Clear()
	if errors.Is(err, service.ErrEmptyRoster) {
		response.FailWithNotice(c, http.StatusUnprocessableEntity, response.ErrNothingToDelete, h.notifier.For(NoticeClearEmpty))
		return
	}

	response.SuccessWithNotice(c, http.StatusOK, gin.H{"removed": n}, h.notifier.For(NoticeCleared))
}

// ExportStudents godoc
// GET /api/v1/students/export?format=csv|xlsx
// Downloads the roster as a document.
func (h *RosterHandler) ExportStudents(c *gin.Context) {
	file, err := h.exportService.Export(c.DefaultQuery("format", "csv"))
	switch {
	case errors.Is(err, exporter.ErrUnsupportedFormat):
		response.FailWithNotice(c, http.StatusBadRequest, response.ErrUnsupportedFormat, h.notifier.For(NoticeExportFormat))
	case errors.Is(err, service.ErrEmptyRoster):
		response.FailWithNotice(c, http.StatusUnprocessableEntity, response.ErrNothingToExport, h.notifier.For(NoticeExportEmpty))
	case err != nil:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	default:
		sendFile(c, file)
	}
}

// ValidateField godoc
// POST /api/v1/students/validate
// Runs the rule of one field for live feedback. Uniqueness is not checked.
func (h *RosterHandler) ValidateField(c *gin.Context) {
	var req ValidateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	msg, err := h.rosterService.ValidateField(req.Field, req.Value)
	if errors.Is(err, validator.ErrUnknownField) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrUnknownField, map[string]string{"field": req.Field})
		return
	}
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, ValidateFieldResponse{
		Field:   req.Field,
		Valid:   msg == "",
		Message: msg,
	})
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
