package admin

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	users map[string]User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]User)}
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (User, error) {
	user, ok := f.users[email]
	if !ok {
		return User{}, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeRepo) Upsert(_ context.Context, user User) error {
	if existing, ok := f.users[user.Email]; ok {
		existing.Name = user.Name
		existing.PasswordHash = user.PasswordHash
		existing.UpdatedAt = user.UpdatedAt
		f.users[user.Email] = existing
		return nil
	}
	f.users[user.Email] = user
	return nil
}

func allowAll(string) bool { return true }

func TestAuthenticate(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, allowAll)

	seeded, err := service.SeedUser(context.Background(), "Admin@Example.com", "Admin", "s3cret")
	if err != nil {
		t.Fatalf("SeedUser: %v", err)
	}
	if seeded.Email != "admin@example.com" {
		t.Fatalf("expected lowercased email, got %q", seeded.Email)
	}

	user, err := service.Authenticate(context.Background(), "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("unexpected user %q", user.Email)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, allowAll)
	if _, err := service.SeedUser(context.Background(), "admin@example.com", "", "s3cret"); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}

	if _, err := service.Authenticate(context.Background(), "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	service := NewService(newFakeRepo(), allowAll)
	if _, err := service.Authenticate(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateNotOnAllowList(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, func(email string) bool { return email == "other@example.com" })
	if _, err := service.SeedUser(context.Background(), "admin@example.com", "", "s3cret"); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}

	if _, err := service.Authenticate(context.Background(), "admin@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for delisted email, got %v", err)
	}
}

func TestSeedUserUpdatesPassword(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, allowAll)
	if _, err := service.SeedUser(context.Background(), "admin@example.com", "", "first"); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}
	if _, err := service.SeedUser(context.Background(), "admin@example.com", "", "second"); err != nil {
		t.Fatalf("SeedUser again: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single user, got %d", len(repo.users))
	}

	if _, err := service.Authenticate(context.Background(), "admin@example.com", "first"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "admin@example.com", "second"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestSeedUserRequiresEmailAndPassword(t *testing.T) {
	service := NewService(newFakeRepo(), allowAll)
	if _, err := service.SeedUser(context.Background(), "", "", "s3cret"); err == nil {
		t.Fatal("expected error for missing email")
	}
	if _, err := service.SeedUser(context.Background(), "admin@example.com", "", ""); err == nil {
		t.Fatal("expected error for missing password")
	}
}
