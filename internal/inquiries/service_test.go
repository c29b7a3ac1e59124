package inquiries

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items []Inquiry
}

func (f *fakeRepo) Create(_ context.Context, item Inquiry) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) (Inquiry, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return f.items[i], nil
		}
	}
	return Inquiry{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) List(_ context.Context, filter ListFilter, limit, skip int64) ([]Inquiry, error) {
	matched := make([]Inquiry, 0)
	for _, item := range f.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Topic != "" && item.Topic != filter.Topic {
			continue
		}
		matched = append(matched, item)
	}
	if skip >= int64(len(matched)) {
		return []Inquiry{}, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeRepo) Count(_ context.Context, filter ListFilter) (int64, error) {
	items, err := f.List(context.Background(), filter, int64(len(f.items)+1), 0)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

type fakeNotifier struct {
	notifications int
	confirmations int
	fail          bool
}

func (f *fakeNotifier) SendInquiryNotification(_ context.Context, _ Inquiry) (string, error) {
	f.notifications++
	if f.fail {
		return "", errors.New("smtp down")
	}
	return "msg-1", nil
}

func (f *fakeNotifier) SendInquiryConfirmation(_ context.Context, _ Inquiry) (string, error) {
	f.confirmations++
	if f.fail {
		return "", errors.New("smtp down")
	}
	return "msg-2", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateDefaults(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	service := NewService(repo, notifier, testLogger())

	inquiry, err := service.Create(context.Background(), CreateRequest{
		Name:    "  Li Wei  ",
		Email:   "li@example.com",
		Message: "Need help with AI product pricing.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inquiry.ID == "" {
		t.Fatal("expected generated id")
	}
	if inquiry.Name != "Li Wei" {
		t.Fatalf("expected trimmed name, got %q", inquiry.Name)
	}
	if inquiry.Topic != TopicConsulting {
		t.Fatalf("expected default topic %q, got %q", TopicConsulting, inquiry.Topic)
	}
	if inquiry.Status != StatusNew {
		t.Fatalf("expected status %q, got %q", StatusNew, inquiry.Status)
	}
	if notifier.notifications != 1 || notifier.confirmations != 1 {
		t.Fatalf("expected one notification and one confirmation, got %d/%d", notifier.notifications, notifier.confirmations)
	}
}

func TestCreateSurvivesNotifierFailure(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, &fakeNotifier{fail: true}, testLogger())

	if _, err := service.Create(context.Background(), CreateRequest{
		Name:    "Li Wei",
		Email:   "li@example.com",
		Message: "hello",
	}); err != nil {
		t.Fatalf("mail failure must not fail the inquiry: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored inquiry, got %d", len(repo.items))
	}
}

func TestCreateWithoutNotifier(t *testing.T) {
	service := NewService(&fakeRepo{}, nil, testLogger())
	if _, err := service.Create(context.Background(), CreateRequest{
		Name:    "Li Wei",
		Email:   "li@example.com",
		Message: "hello",
	}); err != nil {
		t.Fatalf("Create without notifier: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, nil, testLogger())
	created, err := service.Create(context.Background(), CreateRequest{
		Name:    "Li Wei",
		Email:   "li@example.com",
		Message: "hello",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := service.UpdateStatus(context.Background(), created.ID, "Qualified")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusQualified {
		t.Fatalf("expected status %q, got %q", StatusQualified, updated.Status)
	}

	if _, err := service.UpdateStatus(context.Background(), created.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), "missing", StatusWon); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAdminFilters(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, nil, testLogger())

	for _, topic := range []string{TopicConsulting, TopicPricing, TopicConsulting} {
		if _, err := service.Create(context.Background(), CreateRequest{
			Name:    "Li Wei",
			Email:   "li@example.com",
			Topic:   topic,
			Message: "hello",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, total, err := service.ListAdmin(context.Background(), ListFilter{Topic: TopicConsulting}, 1, 10)
	if err != nil {
		t.Fatalf("ListAdmin: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 consulting inquiries, got total=%d len=%d", total, len(items))
	}

	if _, _, err := service.ListAdmin(context.Background(), ListFilter{Status: "bogus"}, 1, 10); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for bad filter, got %v", err)
	}

	items, _, err = service.ListAdmin(context.Background(), ListFilter{}, 2, 2)
	if err != nil {
		t.Fatalf("ListAdmin page 2: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item on page 2, got %d", len(items))
	}
}
