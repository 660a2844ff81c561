package instructor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spinacademy/lessons-api/internal/pkg/imageutil"
	"github.com/spinacademy/lessons-api/internal/pkg/storage"
)

// SlotCounter reports how many open slots an instructor has on a date.
// Implemented by the booking service, wired via an adapter in main.
type SlotCounter interface {
	CountOpenSlots(ctx context.Context, instructorID uuid.UUID, date time.Time) (int, error)
}

// Service handles instructor business logic
type Service struct {
	repo    Repository
	storage storage.Storage
	slots   SlotCounter
}

// NewService creates instructor service
func NewService(repo Repository, store storage.Storage) *Service {
	return &Service{repo: repo, storage: store}
}

// SetSlotCounter wires the booking-side counter after construction to
// break the instructor <-> booking dependency cycle.
func (s *Service) SetSlotCounter(sc SlotCounter) {
	s.slots = sc
}

// Create adds a new instructor
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	ins := &Instructor{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedAt: time.Now(),
	}
	if req.Bio != "" {
		ins.Bio = sql.NullString{String: req.Bio, Valid: true}
	}

	if err := s.repo.Create(ctx, ins); err != nil {
		return nil, err
	}

	log.Info().Str("instructor_id", ins.ID.String()).Msg("instructor created")
	return toResponse(ins), nil
}

// List returns all instructors. When date is non-zero, only instructors
// with at least one open slot on that date are returned.
func (s *Service) List(ctx context.Context, date time.Time) ([]*Response, error) {
	instructors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Response, 0, len(instructors))
	for _, ins := range instructors {
		if !date.IsZero() && s.slots != nil {
			n, err := s.slots.CountOpenSlots(ctx, ins.ID, date)
			if err != nil {
				return nil, err
			}
			if n == 0 {
				continue
			}
		}
		out = append(out, toResponse(ins))
	}
	return out, nil
}

// Get returns one instructor by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Response, error) {
	ins, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ins == nil {
		return nil, ErrNotFound
	}
	return toResponse(ins), nil
}

// UploadPhoto normalizes and stores an instructor photo, then records
// its public URL.
func (s *Service) UploadPhoto(ctx context.Context, id uuid.UUID, file io.Reader) (string, error) {
	if s.storage == nil {
		return "", errors.New("photo storage is not configured")
	}

	ins, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if ins == nil {
		return "", ErrNotFound
	}

	normalized, contentType, err := imageutil.NormalizePhoto(file)
	if err != nil {
		return "", fmt.Errorf("normalize photo: %w", err)
	}

	key := fmt.Sprintf("instructors/%s/photo.jpg", id)
	if err := s.storage.Put(ctx, key, normalized, contentType); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	url := s.storage.URL(key)
	if err := s.repo.UpdatePhotoURL(ctx, id, url); err != nil {
		return "", err
	}

	log.Info().Str("instructor_id", id.String()).Msg("instructor photo updated")
	return url, nil
}

// ListWindows returns all windows for an instructor
func (s *Service) ListWindows(ctx context.Context, instructorID uuid.UUID) ([]*WindowResponse, error) {
	ins, err := s.repo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if ins == nil {
		return nil, ErrNotFound
	}

	windows, err := s.repo.ListWindows(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	out := make([]*WindowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, toWindowResponse(w))
	}
	return out, nil
}

// CreateWindow adds a weekly availability window
func (s *Service) CreateWindow(ctx context.Context, instructorID uuid.UUID, req *WindowRequest) (*WindowResponse, error) {
	ins, err := s.repo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if ins == nil {
		return nil, ErrNotFound
	}

	w, err := windowFromRequest(instructorID, uuid.New(), req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateWindow(ctx, w); err != nil {
		return nil, err
	}
	return toWindowResponse(w), nil
}

// UpdateWindow replaces an existing window's fields
func (s *Service) UpdateWindow(ctx context.Context, instructorID, windowID uuid.UUID, req *WindowRequest) (*WindowResponse, error) {
	w, err := windowFromRequest(instructorID, windowID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWindow(ctx, w); err != nil {
		return nil, err
	}
	return toWindowResponse(w), nil
}

// DeleteWindow removes a window
func (s *Service) DeleteWindow(ctx context.Context, instructorID, windowID uuid.UUID) error {
	return s.repo.DeleteWindow(ctx, instructorID, windowID)
}

func windowFromRequest(instructorID, windowID uuid.UUID, req *WindowRequest) (*Window, error) {
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	if end <= start {
		return nil, ErrInvalidWindow
	}

	return &Window{
		ID:           windowID,
		InstructorID: instructorID,
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    FormatClock(start),
		EndTime:      FormatClock(end),
		IsAvailable:  *req.IsAvailable,
	}, nil
}
