package command

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/pkg/validator"
)

const displayDateLayout = "02/01/2006"

type DispatcherImpl struct {
	attendance.AttendanceService
	progress.ProgressService
}

func NewDispatcher(attendanceService attendance.AttendanceService, progressService progress.ProgressService) command.Dispatcher {
	return &DispatcherImpl{
		AttendanceService: attendanceService,
		ProgressService:   progressService,
	}
}

// Dispatch implements command.Dispatcher.
func (d *DispatcherImpl) Dispatch(ctx context.Context, cmd command.Command) (command.Result, error) {
	var (
		result command.Result
		err    error
	)

	switch cmd.Kind {
	case command.KindCheckIn:
		result, err = d.checkIn(ctx, cmd)
	case command.KindCheckOut:
		result, err = d.checkOut(ctx, cmd)
	case command.KindProgressNote:
		result, err = d.progressNote(ctx, cmd)
	case command.KindStatusQuery:
		result, err = d.status(ctx, cmd)
	case command.KindHelp:
		result = command.Result{Outcome: command.OutcomeInfo, MessageKey: command.MsgHelp}
	default:
		result = command.Result{Outcome: command.OutcomeUnknown, MessageKey: command.MsgUnknown}
	}
	if err != nil {
		slog.Error("command dispatch failed", "kind", cmd.Kind, "channel", cmd.Channel, "error", err)
		return command.Result{Kind: cmd.Kind, Outcome: command.OutcomeUnknown, MessageKey: command.MsgError}, err
	}

	if result.Kind == "" {
		result.Kind = cmd.Kind
	}
	slog.Debug("command dispatched", "kind", cmd.Kind, "channel", cmd.Channel, "outcome", result.Outcome)
	return result, nil
}

func (d *DispatcherImpl) checkIn(ctx context.Context, cmd command.Command) (command.Result, error) {
	if cmd.Coordinates == nil {
		return locationRequired(cmd), nil
	}

	resp, err := d.AttendanceService.CheckIn(ctx, attendance.CheckInRequest{
		Phone:     cmd.MemberKey,
		Latitude:  cmd.Coordinates.Latitude,
		Longitude: cmd.Coordinates.Longitude,
	})
	if err != nil {
		return translateError(err)
	}

	data := recordData(resp)
	data["time"] = data["check_in"]
	return command.Result{
		Outcome:    command.OutcomeSuccess,
		MessageKey: command.MsgCheckInSuccess,
		Data:       data,
		Payload:    resp,
	}, nil
}

func (d *DispatcherImpl) checkOut(ctx context.Context, cmd command.Command) (command.Result, error) {
	if cmd.Coordinates == nil {
		return locationRequired(cmd), nil
	}

	resp, err := d.AttendanceService.CheckOut(ctx, attendance.CheckOutRequest{
		Phone:     cmd.MemberKey,
		Latitude:  cmd.Coordinates.Latitude,
		Longitude: cmd.Coordinates.Longitude,
	})
	if err != nil {
		return translateError(err)
	}

	data := recordData(resp.AttendanceResponse)
	data["time"] = data["check_out"]
	data["hours"] = resp.WorkingHours
	return command.Result{
		Outcome:    command.OutcomeSuccess,
		MessageKey: command.MsgCheckOutSuccess,
		Data:       data,
		Payload:    resp,
	}, nil
}

func (d *DispatcherImpl) progressNote(ctx context.Context, cmd command.Command) (command.Result, error) {
	if validator.IsEmpty(cmd.FreeText) {
		return command.Result{
			Outcome:    command.OutcomeInvalid,
			MessageKey: command.MsgProgressEmpty,
			Fields:     map[string]string{"description": "description is required"},
		}, nil
	}

	resp, err := d.ProgressService.Create(ctx, progress.CreateProgressRequest{
		Phone:       cmd.MemberKey,
		Description: cmd.FreeText,
	})
	if err != nil {
		return translateError(err)
	}

	return command.Result{
		Outcome:    command.OutcomeSuccess,
		MessageKey: command.MsgProgressSuccess,
		Data: map[string]string{
			"name":        resp.MemberName,
			"date":        displayDate(resp.Date),
			"description": resp.Description,
		},
		Payload: resp,
	}, nil
}

func (d *DispatcherImpl) status(ctx context.Context, cmd command.Command) (command.Result, error) {
	resp, err := d.AttendanceService.Today(ctx, cmd.MemberKey)
	if err != nil {
		return translateError(err)
	}

	data := map[string]string{
		"name":   resp.Member.Name,
		"office": resp.Member.OfficeName,
		"date":   displayDate(resp.Date),
	}

	key := command.MsgStatusNone
	if rec := resp.Attendance; rec != nil {
		for k, v := range recordData(*rec) {
			if v != "" {
				data[k] = v
			}
		}
		switch {
		case rec.CheckOutTime != nil:
			key = command.MsgStatusCheckedOut
			if rec.CheckInTime != nil {
				in, errIn := attendance.ParseTimeOfDay(*rec.CheckInTime)
				out, errOut := attendance.ParseTimeOfDay(*rec.CheckOutTime)
				if errIn == nil && errOut == nil {
					data["hours"] = attendance.Between(in, out).String()
				}
			}
		case rec.CheckInTime != nil:
			key = command.MsgStatusCheckedIn
		}
	}

	return command.Result{
		Outcome:    command.OutcomeInfo,
		MessageKey: key,
		Data:       data,
		Payload:    resp,
	}, nil
}

func locationRequired(cmd command.Command) command.Result {
	word := "checkin"
	if cmd.Kind == command.KindCheckOut {
		word = "checkout"
	}
	return command.Result{
		Outcome:    command.OutcomeInvalid,
		MessageKey: command.MsgLocationRequired,
		Data:       map[string]string{"command": word},
		Fields: map[string]string{
			"latitude":  "latitude is required",
			"longitude": "longitude is required",
		},
	}
}

// translateError turns domain failures into results. Anything it does not
// recognize is returned as an internal fault.
func translateError(err error) (command.Result, error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return command.Result{
			Outcome:    command.OutcomeInvalid,
			MessageKey: command.MsgValidationFailed,
			Data:       map[string]string{"details": verrs.Error()},
			Fields:     verrs.ToMap(),
		}, nil
	}

	var conflict *attendance.ConflictError
	if errors.As(err, &conflict) {
		data := recordData(conflict.Existing)
		key := command.MsgCheckInAlready
		data["time"] = data["check_in"]
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			key = command.MsgCheckOutAlready
			data["time"] = data["check_out"]
		}
		return command.Result{
			Outcome:    command.OutcomeConflict,
			MessageKey: key,
			Data:       data,
			Payload:    conflict.Existing,
		}, nil
	}

	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		return command.Result{Outcome: command.OutcomeNotFound, MessageKey: command.MsgMemberNotFound}, nil
	case errors.Is(err, attendance.ErrOutsideGeofence):
		return command.Result{Outcome: command.OutcomeDenied, MessageKey: command.MsgOutsideGeofence}, nil
	case errors.Is(err, attendance.ErrNotCheckedIn):
		return command.Result{Outcome: command.OutcomeConflict, MessageKey: command.MsgNotCheckedIn}, nil
	case errors.Is(err, progress.ErrDuplicateProgress):
		return command.Result{Outcome: command.OutcomeConflict, MessageKey: command.MsgProgressDuplicate}, nil
	}
	return command.Result{}, err
}

func recordData(r attendance.AttendanceResponse) map[string]string {
	data := map[string]string{
		"date":      displayDate(r.Date),
		"status":    r.Status.Label(),
		"check_in":  deref(r.CheckInTime),
		"check_out": deref(r.CheckOutTime),
	}
	if r.Member != nil {
		data["name"] = r.Member.Name
		data["office"] = r.Member.OfficeName
	}
	return data
}

func displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format(displayDateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
