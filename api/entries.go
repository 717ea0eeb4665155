package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/garnizeh/skilltrack/internal/validate"
	"github.com/garnizeh/skilltrack/pkg/models"
	"github.com/garnizeh/skilltrack/pkg/report"
	"github.com/garnizeh/skilltrack/pkg/repository"
)

type EntriesHandler struct {
	entryRepo repository.EntryRepo
}

func NewEntriesHandler(er repository.EntryRepo) *EntriesHandler {
	return &EntriesHandler{entryRepo: er}
}

type createEntryResponse struct {
	ID string `json:"id"`
}

func (h *EntriesHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// Schema validation first so a malformed payload never reaches
	// storage; field-shape problems come back as one message per
	// violation.
	violations, err := validate.Entry(ctx, body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(violations) > 0 {
		writeJSON(w, map[string]any{"errors": violations}, http.StatusBadRequest)
		return
	}

	var e models.Entry
	if err := json.Unmarshal(body, &e); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	// Owner defaults to the token subject.
	if e.UserID == "" {
		if id := IdentityFrom(ctx); id != nil {
			e.UserID = id.ID
		}
	}
	if e.UserID == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}

	// The project name travels only with the project tag, the free-form
	// practice type only with the catch-all tag.
	if !e.PracticeType.Contains(models.PracticeTypeProject) {
		e.ProjectName = nil
	}
	if !e.PracticeType.Contains(models.PracticeTypeOther) {
		e.OtherPracticeType = nil
	}

	e.Notes = strings.TrimSpace(e.Notes)
	e.ID = ""
	e.Created = time.Now().UTC().UnixMilli()

	id, err := h.entryRepo.CreateEntry(ctx, &e)
	if err != nil {
		http.Error(w, "failed to store entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, createEntryResponse{ID: id}, http.StatusCreated)
}

// ListEntries returns the full entry set. The dashboard aggregates
// viewer-vs-others statistics from it, so it is deliberately not
// scoped to the caller.
func (h *EntriesHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryRepo.ListEntries(r.Context())
	if err != nil {
		http.Error(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []models.Entry{}
	}

	writeJSON(w, entries, http.StatusOK)
}

func (h *EntriesHandler) ListUserEntries(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	// pagination: limit and offset params
	q := r.URL.Query()
	limit := 50
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	entries, err := h.entryRepo.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		http.Error(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	total, err := h.entryRepo.CountByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to count entries", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []models.Entry{}
	}

	resp := map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  entries,
	}

	writeJSON(w, resp, http.StatusOK)
}

// Summary runs the aggregation engine for the authenticated viewer
// over the full entry set.
func (h *EntriesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	if id == nil {
		http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
		return
	}

	entries, err := h.entryRepo.ListEntries(r.Context())
	if err != nil {
		http.Error(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	rep := report.Summarize(entries, id.ID, logger)
	if rep.Skills == nil {
		rep.Skills = []report.SkillSummary{}
	}

	writeJSON(w, rep, http.StatusOK)
}
