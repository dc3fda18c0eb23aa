package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/attendance"
	"github.com/Spok95/gym-crm/internal/domain/members"
	"github.com/Spok95/gym-crm/internal/domain/services"
	"github.com/Spok95/gym-crm/internal/infra/metrics"
)

type Handler struct {
	log      *slog.Logger
	recorder *attendance.Recorder
	members  *members.Repo
	services *services.Repo
	visits   *attendance.Repo
}

func NewHandler(log *slog.Logger,
	recorder *attendance.Recorder,
	membersRepo *members.Repo,
	servicesRepo *services.Repo,
	visitsRepo *attendance.Repo) *Handler {

	return &Handler{
		log:      log,
		recorder: recorder,
		members:  membersRepo,
		services: servicesRepo,
		visits:   visitsRepo,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type failResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, failResponse{Success: false, Message: msg})
}

func memberID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /members/{id}/attendance — отметка посещения за сегодня.
func (h *Handler) recordAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "invalid member id")
		return
	}

	res, err := h.recorder.Record(r.Context(), id, time.Now())
	if err != nil {
		h.log.Error("record attendance failed", "member_id", id, "err", err)
		metrics.CheckinsTotal.WithLabelValues("error").Inc()
		writeFail(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !res.Success {
		metrics.CheckinsTotal.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadRequest, res)
		return
	}

	metrics.CheckinsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusCreated, res)
}

type memberResponse struct {
	ID              int64   `json:"id"`
	FullName        string  `json:"full_name"`
	Phone           string  `json:"phone"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	TotalAttendance int     `json:"total_attendance"`
	DaysLeft        *int    `json:"days_left"`
	Service         *string `json:"service"`
}

// GET /members/{id}
func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "invalid member id")
		return
	}

	m, err := h.members.GetWithService(r.Context(), id)
	if err != nil {
		h.log.Error("get member failed", "member_id", id, "err", err)
		writeFail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if m == nil {
		writeFail(w, http.StatusNotFound, "Member not found")
		return
	}

	resp := memberResponse{
		ID:              m.ID,
		FullName:        m.FullName,
		Phone:           m.Phone,
		Status:          string(m.Status),
		StartDate:       m.StartDate.Format("2006-01-02"),
		TotalAttendance: m.TotalAttendance,
		DaysLeft:        m.DaysLeft,
	}
	if m.Service != nil {
		resp.Service = &m.Service.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

type serviceResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Period  int     `json:"period"`
	MaxDays int     `json:"max_days"`
	Price   float64 `json:"price"`
	Active  bool    `json:"active"`
}

// GET /services
func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.services.List(r.Context())
	if err != nil {
		h.log.Error("list services failed", "err", err)
		writeFail(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]serviceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, serviceResponse{
			ID: s.ID, Name: s.Name, Period: s.Period,
			MaxDays: s.MaxDays, Price: s.Price, Active: s.Active,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
