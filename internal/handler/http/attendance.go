package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/Jevon1999/api-presensi/internal/handler/http/middleware"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	dispatcher        command.Dispatcher
	attendanceService attendance.AttendanceService
	bot               config.BotConfigStore
}

func NewAttendanceHandler(dispatcher command.Dispatcher, attendanceService attendance.AttendanceService, bot config.BotConfigStore) AttendanceHandler {
	return &attendanceHandlerImpl{
		dispatcher:        dispatcher,
		attendanceService: attendanceService,
		bot:               bot,
	}
}

// presenceRequest accepts both the current and the legacy phone field.
type presenceRequest struct {
	Phone     string   `json:"phone"`
	NoHP      string   `json:"no_hp"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (p presenceRequest) memberKey() string {
	if p.Phone != "" {
		return p.Phone
	}
	return p.NoHP
}

func (p presenceRequest) coordinates() *command.Coordinates {
	if p.Latitude == nil || p.Longitude == nil {
		return nil
	}
	return &command.Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.presence(w, r, command.KindCheckIn, true)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.presence(w, r, command.KindCheckOut, false)
}

func (h *attendanceHandlerImpl) presence(w http.ResponseWriter, r *http.Request, kind command.Kind, created bool) {
	var req presenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("presence decode error", "kind", kind, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), command.Command{
		Kind:        kind,
		MemberKey:   req.memberKey(),
		Coordinates: req.coordinates(),
		Channel:     command.ChannelREST,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeCommandResult(w, h.bot, result, created)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.URL.Query().Get("phone"))
	if key == "" {
		key = strings.TrimSpace(r.URL.Query().Get("no_hp"))
	}
	if key == "" {
		response.ValidationError(w, map[string]string{"phone": "phone is required"})
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), command.Command{
		Kind:      command.KindStatusQuery,
		MemberKey: key,
		Channel:   command.ChannelREST,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeCommandResult(w, h.bot, result, false)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Reset implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	var req attendance.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reset decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AttendanceID = chi.URLParam(r, "id")
	req.ActorID = middleware.UserID(r)

	result, err := h.attendanceService.Reset(r.Context(), req)
	if err != nil {
		slog.Error("Reset service error", "attendance_id", req.AttendanceID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("attendance reset", "attendance_id", req.AttendanceID, "actor_id", req.ActorID)
	response.SuccessWithMessage(w, "Attendance reset successfully", result)
}

// Report implements AttendanceHandler.
func (h *attendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.ReportFilter{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	if officeID := query.Get("office_id"); officeID != "" {
		filter.OfficeID = &officeID
	}

	if memberID := query.Get("member_id"); memberID != "" {
		filter.MemberID = &memberID
	}

	result, err := h.attendanceService.Report(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
