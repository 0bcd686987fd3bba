package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"roster-calendar/internal/api/middleware"
	"roster-calendar/internal/dto"
	"roster-calendar/internal/model"
	"roster-calendar/internal/service"
	apperrors "roster-calendar/pkg/errors"
	"roster-calendar/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock CalendarService
// ═══════════════════════════════════════════════════════════

type mockCalendarService struct {
	buildResult *service.CalendarResult
	buildErr    error
	buf         *bytes.Buffer
	filename    string
	exportErr   error

	// last request seen, with file contents read out
	gotName      string
	gotAssistant string
	gotStaff     string
	gotStaffNil  bool
}

func (m *mockCalendarService) capture(req service.CalendarRequest) {
	m.gotName = req.Name
	if req.Assistant != nil {
		b, _ := io.ReadAll(req.Assistant.Content)
		m.gotAssistant = req.Assistant.Filename + ":" + string(b)
	}
	m.gotStaffNil = req.Staff == nil
	if req.Staff != nil {
		b, _ := io.ReadAll(req.Staff.Content)
		m.gotStaff = req.Staff.Filename + ":" + string(b)
	}
}

func (m *mockCalendarService) Build(_ context.Context, req service.CalendarRequest) (*service.CalendarResult, error) {
	m.capture(req)
	return m.buildResult, m.buildErr
}
func (m *mockCalendarService) ExportICS(_ context.Context, req service.CalendarRequest) (*bytes.Buffer, string, error) {
	m.capture(req)
	return m.buf, m.filename, m.exportErr
}
func (m *mockCalendarService) ExportXLSX(_ context.Context, req service.CalendarRequest) (*bytes.Buffer, string, error) {
	m.capture(req)
	return m.buf, m.filename, m.exportErr
}

// ═══════════════════════════════════════════════════════════
// helpers
// ═══════════════════════════════════════════════════════════

func setupCalendarRouter(svc service.CalendarService, maxBytes int64) *gin.Engine {
	h := NewCalendarHandler(svc)
	r := gin.New()
	g := r.Group("/api/v1/calendars", middleware.BodyLimit(maxBytes))
	g.POST("/preview", h.Preview)
	g.POST("/ics", h.DownloadICS)
	g.POST("/xlsx", h.DownloadXLSX)
	return r
}

// multipartBody builds a form; files maps field → filename:content.
func multipartBody(t *testing.T, name string, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	if name != "" {
		if err := w.WriteField(dto.FormFieldName, name); err != nil {
			t.Fatal(err)
		}
	}
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(f[1])); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func doUpload(r *gin.Engine, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, w.Body.String())
	}
	return resp
}

var bothFiles = map[string][2]string{
	dto.FormFieldAssistant: {"asistan.csv", "assistant-bytes"},
	dto.FormFieldStaff:     {"uzman.xlsx", "staff-bytes"},
}

// ═══════════════════════════════════════════════════════════
// Preview
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_Preview_Success(t *testing.T) {
	svc := &mockCalendarService{buildResult: &service.CalendarResult{
		Owner: "Tahir",
		Found: true,
		Entries: []model.CalendarEntry{{
			Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Title:       "AMELİYAT 1 - Dr. Aslan",
			Description: "Görev: AMELİYAT 1",
			Kind:        model.DutySurgery,
			Column:      "AMELİYAT 1",
			Supervisors: []model.Supervisor{{StaffIdentity: "Dr. Aslan_1", CellText: "Ameliyat"}},
		}},
		Stats: model.Statistics{Surgery: 1},
	}}
	r := setupCalendarRouter(svc, 1<<20)

	body, ct := multipartBody(t, "Tahir", bothFiles)
	w := doUpload(r, "/api/v1/calendars/preview", body, ct)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotName != "Tahir" || svc.gotAssistant != "asistan.csv:assistant-bytes" || svc.gotStaff != "uzman.xlsx:staff-bytes" {
		t.Errorf("request not forwarded: %+v", svc)
	}

	var resp struct {
		Code int                         `json:"code"`
		Data dto.CalendarPreviewResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d := resp.Data
	if !d.Found || d.EntryCount != 1 || d.Statistics.Surgery != 1 || d.Statistics.Total != 1 {
		t.Errorf("unexpected data %+v", d)
	}
	e := d.Entries[0]
	if e.Date != "2024-03-05" || e.Kind != "surgery" || e.KindLabel != "Ameliyat" {
		t.Errorf("unexpected entry %+v", e)
	}
	if len(e.Supervisors) != 1 || e.Supervisors[0] != "Dr. Aslan" {
		t.Errorf("Supervisors = %v", e.Supervisors)
	}
}

func TestCalendarHandler_Preview_NotFoundIsNotAnError(t *testing.T) {
	svc := &mockCalendarService{buildResult: &service.CalendarResult{Owner: "Zeynep"}}
	r := setupCalendarRouter(svc, 1<<20)

	body, ct := multipartBody(t, "Zeynep", map[string][2]string{
		dto.FormFieldAssistant: {"a.csv", "x"},
	})
	w := doUpload(r, "/api/v1/calendars/preview", body, ct)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !svc.gotStaffNil {
		t.Error("missing staff file should be passed as nil")
	}
	if !strings.Contains(w.Body.String(), `"found":false`) || !strings.Contains(w.Body.String(), `"entries":[]`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCalendarHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"name required", service.ErrCalendarNameRequired, http.StatusBadRequest, 20001},
		{"assistant required", service.ErrCalendarAssistantRequired, http.StatusBadRequest, 20002},
		{"staff required", service.ErrCalendarStaffRequired, http.StatusBadRequest, 20003},
		{"assistant load", &apperrors.LoadError{Source: service.SourceAssistant, Filename: "a.csv", Err: apperrors.ErrUndecodable}, http.StatusUnprocessableEntity, 20005},
		{"staff load", &apperrors.LoadError{Source: service.SourceStaff, Filename: "b.csv", Err: apperrors.ErrNoTabularData}, http.StatusUnprocessableEntity, 20006},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupCalendarRouter(&mockCalendarService{buildErr: tt.err}, 1<<20)
			body, ct := multipartBody(t, "Tahir", bothFiles)
			w := doUpload(r, "/api/v1/calendars/preview", body, ct)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decodeResponse(t, w); resp.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestCalendarHandler_Preview_NotMultipart(t *testing.T) {
	r := setupCalendarRouter(&mockCalendarService{}, 1<<20)
	w := doUpload(r, "/api/v1/calendars/preview", strings.NewReader(`{"name":"Tahir"}`), "application/json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 10001 {
		t.Errorf("code = %d", resp.Code)
	}
}

func TestCalendarHandler_Preview_BodyTooLarge(t *testing.T) {
	r := setupCalendarRouter(&mockCalendarService{}, 64)
	body, ct := multipartBody(t, "Tahir", map[string][2]string{
		dto.FormFieldAssistant: {"a.csv", strings.Repeat("x", 1024)},
	})
	w := doUpload(r, "/api/v1/calendars/preview", body, ct)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// Downloads
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_DownloadICS(t *testing.T) {
	svc := &mockCalendarService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		filename: "Tahir_Program.ics",
	}
	r := setupCalendarRouter(svc, 1<<20)

	body, ct := multipartBody(t, "Tahir", bothFiles)
	w := doUpload(r, "/api/v1/calendars/ics", body, ct)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "text/calendar; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="Tahir_Program.ics"`) {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestCalendarHandler_DownloadICS_NoDuties(t *testing.T) {
	r := setupCalendarRouter(&mockCalendarService{exportErr: service.ErrCalendarNoDuties}, 1<<20)

	body, ct := multipartBody(t, "Zeynep", bothFiles)
	w := doUpload(r, "/api/v1/calendars/ics", body, ct)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 20004 {
		t.Errorf("code = %d", resp.Code)
	}
}

func TestCalendarHandler_DownloadXLSX(t *testing.T) {
	svc := &mockCalendarService{
		buf:      bytes.NewBuffer([]byte("PK\x03\x04")),
		filename: "Tahir_Program.xlsx",
	}
	r := setupCalendarRouter(svc, 1<<20)

	body, ct := multipartBody(t, "Tahir", bothFiles)
	w := doUpload(r, "/api/v1/calendars/xlsx", body, ct)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != contentTypeXLSX {
		t.Errorf("Content-Type = %q", got)
	}
}
