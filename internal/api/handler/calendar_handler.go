package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"roster-calendar/internal/api/middleware"
	"roster-calendar/internal/dto"
	"roster-calendar/internal/service"
	apperrors "roster-calendar/pkg/errors"
	"roster-calendar/pkg/response"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// uploads beyond this are spooled to temporary files
	multipartMemory = 8 << 20
)

// CalendarHandler calendar module HTTP handler
type CalendarHandler struct {
	svc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// Preview interprets the rosters and returns the entries as JSON
// POST /api/v1/calendars/preview
func (h *CalendarHandler) Preview(c *gin.Context) {
	req, cleanup, ok := bindCalendarRequest(c)
	if !ok {
		return
	}
	defer cleanup()

	res, err := h.svc.Build(c.Request.Context(), req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, dto.NewCalendarPreviewResponse(res.Owner, res.Found, res.Entries, res.Stats))
}

// DownloadICS returns the personal calendar as an .ics file
// POST /api/v1/calendars/ics
func (h *CalendarHandler) DownloadICS(c *gin.Context) {
	req, cleanup, ok := bindCalendarRequest(c)
	if !ok {
		return
	}
	defer cleanup()

	buf, filename, err := h.svc.ExportICS(c.Request.Context(), req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeICS, buf.Bytes())
}

// DownloadXLSX returns the personal schedule as an Excel workbook
// POST /api/v1/calendars/xlsx
func (h *CalendarHandler) DownloadXLSX(c *gin.Context) {
	req, cleanup, ok := bindCalendarRequest(c)
	if !ok {
		return
	}
	defer cleanup()

	buf, filename, err := h.svc.ExportXLSX(c.Request.Context(), req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// bindCalendarRequest reads the multipart form. Missing name or files are left
// to the service to reject. On failure the response is already written.
func bindCalendarRequest(c *gin.Context) (service.CalendarRequest, func(), bool) {
	var req service.CalendarRequest
	noop := func() {}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.TooLarge(c)
			return req, noop, false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "expected a multipart/form-data upload", err.Error())
		return req, noop, false
	}

	var files []multipart.File
	cleanup := func() {
		for _, f := range files {
			_ = f.Close()
		}
		if c.Request.MultipartForm != nil {
			_ = c.Request.MultipartForm.RemoveAll()
		}
	}

	open := func(field string) (*service.RosterUpload, error) {
		f, hdr, err := c.Request.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		files = append(files, f)
		return &service.RosterUpload{Filename: hdr.Filename, Content: f}, nil
	}

	req.Name = c.Request.FormValue(dto.FormFieldName)
	var err error
	if req.Assistant, err = open(dto.FormFieldAssistant); err == nil {
		req.Staff, err = open(dto.FormFieldStaff)
	}
	if err != nil {
		cleanup()
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "could not read uploaded file", err.Error())
		return req, noop, false
	}
	return req, cleanup, true
}

func handleCalendarError(c *gin.Context, err error) {
	if le, ok := apperrors.AsLoadError(err); ok {
		code, msg := 20005, "assistant roster could not be read"
		if le.Source == service.SourceStaff {
			code, msg = 20006, "staff roster could not be read"
		}
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, code, msg, err.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrCalendarNameRequired):
		response.BadRequest(c, 20001, "name is required")
	case errors.Is(err, service.ErrCalendarAssistantRequired):
		response.BadRequest(c, 20002, "assistant roster file is required")
	case errors.Is(err, service.ErrCalendarStaffRequired):
		response.BadRequest(c, 20003, "staff roster file is required")
	case errors.Is(err, service.ErrCalendarNoDuties):
		response.NotFound(c, 20004, "name was not found in the roster")
	case middleware.IsBodyTooLarge(err):
		response.TooLarge(c)
	default:
		response.InternalError(c)
	}
}
