package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/internal/service/lead"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type leadService interface {
	List(ctx context.Context, caller domain.Caller, req access.ListRequest) (*domain.LeadPage, error)
	Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Lead, error)
	Create(ctx context.Context, caller domain.Caller, input lead.CreateLeadInput) (*domain.Lead, error)
	Update(ctx context.Context, caller domain.Caller, id uuid.UUID, input lead.UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error
	AddNote(ctx context.Context, caller domain.Caller, leadID uuid.UUID, input lead.NoteInput) (*domain.Lead, error)
	DeleteNote(ctx context.Context, caller domain.Caller, leadID, noteID uuid.UUID) (*domain.Lead, error)
	Stats(ctx context.Context, caller domain.Caller) (*domain.LeadStats, error)
	Import(ctx context.Context, caller domain.Caller, file io.Reader) (*lead.ImportResult, error)
	Export(ctx context.Context, caller domain.Caller, req access.ListRequest) (*lead.ExportResult, error)
}

// LeadHandler serves /api/leads.
type LeadHandler struct {
	svc            leadService
	log            *slog.Logger
	maxUploadBytes int64
	now            func() time.Time
}

// NewLeadHandler creates a LeadHandler. Uploads larger than maxUploadBytes
// are rejected.
func NewLeadHandler(svc leadService, logger *slog.Logger, maxUploadBytes int64) *LeadHandler {
	return &LeadHandler{
		svc:            svc,
		log:            logger.With("handler", "lead"),
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

type createLeadRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Source     string   `json:"source"`
	Status     string   `json:"status"`
	Tags       []string `json:"tags"`
	AssignedTo string   `json:"assignedTo"`
}

type updateLeadRequest struct {
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Source     *string   `json:"source"`
	Status     *string   `json:"status"`
	Tags       *[]string `json:"tags"`
	AssignedTo *string   `json:"assignedTo"`
}

type noteRequest struct {
	Text string `json:"text"`
}

type importErrorResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Message string                `json:"message"`
	Count   int                   `json:"count"`
	Skipped int                   `json:"skipped"`
	Errors  []importErrorResponse `json:"errors"`
}

func listRequest(r *http.Request) access.ListRequest {
	q := r.URL.Query()
	return access.ListRequest{
		Status:     q.Get("status"),
		Tags:       q.Get("tags"),
		Search:     q.Get("search"),
		AssignedTo: q.Get("assignedTo"),
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Page:       q.Get("page"),
		Limit:      q.Get("limit"),
	}
}

// List handles GET /api/leads.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	page, err := h.svc.List(r.Context(), caller, listRequest(r))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := leadPageResponse{
		Items: make([]leadResponse, 0, len(page.Items)),
		Pagination: paginationResponse{
			Total: page.Pagination.Total,
			Page:  page.Pagination.Page,
			Pages: page.Pagination.Pages,
		},
	}
	for i := range page.Items {
		resp.Items = append(resp.Items, toLeadResponse(&page.Items[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/leads/{id}.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(l))
}

// Create handles POST /api/leads.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var req createLeadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.Create(r.Context(), caller, lead.CreateLeadInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Source:     req.Source,
		Status:     req.Status,
		Tags:       req.Tags,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeadResponse(l))
}

// Update handles PUT /api/leads/{id}.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateLeadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.Update(r.Context(), caller, id, lead.UpdateLeadInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Source:     req.Source,
		Status:     req.Status,
		Tags:       req.Tags,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(l))
}

// Delete handles DELETE /api/leads/{id}.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), caller, id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead removed"})
}

// AddNote handles POST /api/leads/{id}/note.
func (h *LeadHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.AddNote(r.Context(), caller, id, lead.NoteInput{Text: req.Text})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(l))
}

// DeleteNote handles DELETE /api/leads/{id}/note/{noteId}.
func (h *LeadHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "noteId")
	if !ok {
		return
	}

	l, err := h.svc.DeleteNote(r.Context(), caller, id, noteID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(l))
}

// Stats handles GET /api/leads/stats.
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), caller)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Import handles POST /api/leads/import (multipart, field "file").
func (h *LeadHandler) Import(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), caller, file)
	if err != nil {
		if errors.Is(err, domain.ErrExternal) {
			h.log.InfoContext(r.Context(), "unreadable upload", slog.String("error", err.Error()))
			writeError(w, http.StatusBadRequest, "could not read spreadsheet")
			return
		}
		respondError(h.log, w, r, err)
		return
	}

	resp := importResponse{
		Message: fmt.Sprintf("Imported %d leads", result.Count),
		Count:   result.Count,
		Skipped: result.Skipped,
		Errors:  make([]importErrorResponse, 0, len(result.Errors)),
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, importErrorResponse{Line: e.Line, Reason: e.Reason})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /api/leads/export. It accepts the same filters as List.
func (h *LeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Export(r.Context(), caller, listRequest(r))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	filename := "leads-" + h.now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		h.log.WarnContext(r.Context(), "write export", slog.String("error", err.Error()))
	}
}
