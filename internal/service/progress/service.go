package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/pkg/phone"
	"github.com/Jevon1999/api-presensi/internal/pkg/sse"
)

type EventPublisher interface {
	PublishToMany(topics []string, event sse.Event)
}

type ProgressServiceImpl struct {
	progress.ProgressRepository
	member.MemberRepository
	events EventPublisher

	location    *time.Location
	countryCode string
	now         func() time.Time
}

func NewProgressService(
	progressRepo progress.ProgressRepository,
	memberRepo member.MemberRepository,
	events EventPublisher,
	location *time.Location,
	countryCode string,
	now func() time.Time,
) progress.ProgressService {
	if location == nil {
		location = attendance.DefaultLocation()
	}
	if countryCode == "" {
		countryCode = phone.DefaultCountryCode
	}
	if now == nil {
		now = time.Now
	}
	return &ProgressServiceImpl{
		ProgressRepository: progressRepo,
		MemberRepository:   memberRepo,
		events:             events,
		location:           location,
		countryCode:        countryCode,
		now:                now,
	}
}

// Create implements progress.ProgressService.
func (s *ProgressServiceImpl) Create(ctx context.Context, req progress.CreateProgressRequest) (progress.ProgressResponse, error) {
	if err := req.Validate(); err != nil {
		return progress.ProgressResponse{}, err
	}

	today := attendance.DateOf(s.now().In(s.location))

	m, err := s.MemberRepository.GetActiveByPhone(ctx, phone.Canonical(req.Phone, s.countryCode))
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return progress.ProgressResponse{}, member.ErrMemberNotFound
		}
		return progress.ProgressResponse{}, fmt.Errorf("failed to get member: %w", err)
	}

	created, err := s.ProgressRepository.Create(ctx, progress.Progress{
		MemberID:    m.ID,
		Date:        today,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		if errors.Is(err, progress.ErrDuplicateProgress) {
			return progress.ProgressResponse{}, progress.ErrDuplicateProgress
		}
		return progress.ProgressResponse{}, fmt.Errorf("failed to create progress: %w", err)
	}

	resp := progress.ProgressResponse{
		ID:          created.ID,
		MemberID:    m.ID,
		MemberName:  m.Name,
		Date:        created.Date.Format("2006-01-02"),
		Description: created.Description,
		CreatedAt:   created.CreatedAt.Format(time.RFC3339),
	}

	if s.events != nil {
		s.events.PublishToMany([]string{sse.TopicAll, sse.OfficeTopic(m.OfficeID)}, sse.Event{
			Event: sse.EventProgress,
			Data:  resp,
		})
	}

	slog.Info("progress recorded", "member_id", m.ID, "progress_id", created.ID)
	return resp, nil
}
