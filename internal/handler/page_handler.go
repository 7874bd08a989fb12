package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roster-mahasiswa/internal/exporter"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stemsi/roster-mahasiswa/internal/repository"
	"github.com/stemsi/roster-mahasiswa/internal/service"
)

// PageTemplate is the name of the single page template.
const PageTemplate = "index.tmpl"

// genderOption is one entry of the gender select.
type genderOption struct {
	Value string
	Label string
}

var genderOptions = []genderOption{
	{string(model.GenderMale), model.GenderMale.Label()},
	{string(model.GenderFemale), model.GenderFemale.Label()},
}

// PageData is everything index.tmpl renders.
type PageData struct {
	Form     model.StudentForm
	Errors   map[string]string
	Snapshot model.RosterSnapshot
	Notice   *model.Notification
	Genders  []genderOption
}

// PageHandler is the HTML adapter: it turns browser form posts into roster
// operations and renders the page from the roster snapshot.
type PageHandler struct {
	rosterService *service.RosterService
	exportService *service.ExportService
	notifier      *Notifier
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(
	rosterService *service.RosterService,
	exportService *service.ExportService,
	notifier *Notifier,
) *PageHandler {
	return &PageHandler{
		rosterService: rosterService,
		exportService: exportService,
		notifier:      notifier,
	}
}

// Index godoc
// GET /
// Renders the form, the roster and any notice passed in the query.
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, model.StudentForm{}, nil, h.notifier.For(c.Query("notice")))
}

// Submit godoc
// POST /students
// Adds a record from the form. Errors re-render the page with the submitted
// values and an inline message per field.
func (h *PageHandler) Submit(c *gin.Context) {
	var form model.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, form, map[string]string{"detail": err.Error()}, nil)
		return
	}

	_, err := h.rosterService.Add(form)
	if err != nil {
		form.Normalize()
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			h.render(c, http.StatusUnprocessableEntity, form, ve.Fields, nil)
		case errors.Is(err, repository.ErrDuplicateNPM):
			h.render(c, http.StatusConflict, form, duplicateNPMFields, nil)
		default:
			_ = c.Error(err)
			c.String(http.StatusInternalServerError, "Terjadi kesalahan server internal.")
		}
		return
	}

	redirect(c, NoticeAdded, "koleksi")
}

// Delete godoc
// POST /students/:id/delete
func (h *PageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || !h.rosterService.Remove(id) {
		redirect(c, NoticeMissing, "koleksi")
		return
	}
	redirect(c, NoticeDeleted, "koleksi")
}

// Clear godoc
// POST /students/clear
func (h *PageHandler) Clear(c *gin.Context) {
	if _, err := h.rosterService.Clear(); errors.Is(err, service.ErrEmptyRoster) {
		redirect(c, NoticeClearEmpty, "")
		return
	}
	redirect(c, NoticeCleared, "")
}

// Export godoc
// GET /students/export?format=csv|xlsx
// Downloads the roster, or returns to the page with a notice when there is nothing to export.
func (h *PageHandler) Export(c *gin.Context) {
	file, err := h.exportService.Export(c.DefaultQuery("format", "csv"))
	switch {
	case errors.Is(err, service.ErrEmptyRoster):
		redirect(c, NoticeExportEmpty, "")
	case errors.Is(err, exporter.ErrUnsupportedFormat):
		redirect(c, NoticeExportFormat, "")
	case err != nil:
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Terjadi kesalahan server internal.")
	default:
		sendFile(c, file)
	}
}

func (h *PageHandler) render(c *gin.Context, status int, form model.StudentForm, errs map[string]string, notice *model.Notification) {
	c.HTML(status, PageTemplate, PageData{
		Form:     form,
		Errors:   errs,
		Snapshot: h.rosterService.Snapshot(),
		Notice:   notice,
		Genders:  genderOptions,
	})
}

// redirect sends the browser back to the page (303, so a refresh never re-posts).
func redirect(c *gin.Context, notice, anchor string) {
	target := "/?notice=" + url.QueryEscape(notice)
	if anchor != "" {
		target += "#" + anchor
	}
	c.Redirect(http.StatusSeeOther, target)
}
