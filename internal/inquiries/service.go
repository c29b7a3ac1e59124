package inquiries

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("inquiry not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// Notifier sends the admin notification and the sender confirmation. Both
// are best-effort: a mail failure never fails the inquiry itself.
type Notifier interface {
	SendInquiryNotification(ctx context.Context, inquiry Inquiry) (string, error)
	SendInquiryConfirmation(ctx context.Context, inquiry Inquiry) (string, error)
}

type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
}

func NewService(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Inquiry, error) {
	topic := strings.ToLower(strings.TrimSpace(req.Topic))
	if topic == "" {
		topic = TopicConsulting
	}

	now := nowUTC()
	inquiry := Inquiry{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Company:   strings.TrimSpace(req.Company),
		Topic:     topic,
		Budget:    strings.TrimSpace(req.Budget),
		Message:   strings.TrimSpace(req.Message),
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return Inquiry{}, err
	}

	if s.notifier != nil {
		if _, err := s.notifier.SendInquiryNotification(ctx, inquiry); err != nil {
			s.log.Warn("inquiry notification failed", slog.String("inquiry_id", inquiry.ID), slog.String("error", err.Error()))
		}
		if _, err := s.notifier.SendInquiryConfirmation(ctx, inquiry); err != nil {
			s.log.Warn("inquiry confirmation failed", slog.String("inquiry_id", inquiry.ID), slog.String("error", err.Error()))
		}
	}

	return inquiry, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Inquiry, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return Inquiry{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, strings.TrimSpace(id), status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, err
	}
	return updated, nil
}

func (s *Service) ListAdmin(ctx context.Context, filter ListFilter, page, limit int64) ([]Inquiry, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	filter.Topic = strings.ToLower(strings.TrimSpace(filter.Topic))
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	skip := (page - 1) * limit
	items, err := s.repo.List(ctx, filter, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
