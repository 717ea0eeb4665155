package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/skilltrack/pkg/models"
	"github.com/garnizeh/skilltrack/pkg/repository"
)

type OptionsHandler struct {
	optionRepo repository.OptionRepo
}

func NewOptionsHandler(or repository.OptionRepo) *OptionsHandler {
	return &OptionsHandler{optionRepo: or}
}

func (h *OptionsHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.optionRepo.ListOptions(r.Context())
	if err != nil {
		http.Error(w, "failed to list options", http.StatusInternalServerError)
		return
	}

	if options == nil {
		options = []models.Option{}
	}

	writeJSON(w, options, http.StatusOK)
}

func (h *OptionsHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	var o models.Option
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := o.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o.ID = ""
	id, err := h.optionRepo.CreateOption(r.Context(), &o)
	if err != nil {
		http.Error(w, "failed to create option", http.StatusInternalServerError)
		return
	}

	o.ID = id
	writeJSON(w, o, http.StatusCreated)
}

func (h *OptionsHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx := r.Context()

	existing, err := h.optionRepo.GetOption(ctx, id)
	if err != nil {
		http.Error(w, "failed to update option", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "option not found", http.StatusNotFound)
		return
	}

	var o models.Option
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	o.ID = id
	if o.Type == "" {
		o.Type = existing.Type
	}
	if err := o.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.optionRepo.UpdateOption(ctx, &o); err != nil {
		http.Error(w, "failed to update option", http.StatusInternalServerError)
		return
	}

	writeJSON(w, o, http.StatusOK)
}

func (h *OptionsHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.optionRepo.DeleteOption(r.Context(), id); err != nil {
		http.Error(w, "failed to delete option", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
