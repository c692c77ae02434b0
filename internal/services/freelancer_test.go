package services

import (
	"context"
	"testing"

	"github.com/diewo77/freelance-invoices/internal/models"
)

func TestSaveProfileCreatesThenUpdates(t *testing.T) {
	st := setupTestStore(t)
	svc := NewFreelancerService(st)
	ctx := context.Background()

	user := &models.User{Email: "solo@dev.example", PasswordHash: "x"}
	if err := st.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := svc.Profile(ctx, user.ID); !IsNotFound(err) {
		t.Fatalf("expected not found before first save, got %v", err)
	}

	first, err := svc.SaveProfile(ctx, user.ID, ProfileInput{
		Name: "Solo Dev", Email: "solo@dev.example", Address: "5 Oak St",
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected assigned profile ID")
	}

	second, err := svc.SaveProfile(ctx, user.ID, ProfileInput{
		Name: "Solo Dev LLC", Email: "solo@dev.example", Address: "5 Oak St", Website: "https://solo.example",
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second save created a new profile: %s != %s", second.ID, first.ID)
	}
	if second.Name != "Solo Dev LLC" || second.Website != "https://solo.example" {
		t.Errorf("update not applied: %+v", second)
	}
}

func TestSaveProfileValidation(t *testing.T) {
	st := setupTestStore(t)
	svc := NewFreelancerService(st)
	ctx := context.Background()

	user := &models.User{Email: "v@dev.example", PasswordHash: "x"}
	if err := st.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tests := []struct {
		name    string
		in      ProfileInput
		wantMsg string
	}{
		{"blank name", ProfileInput{Email: "v@dev.example", Address: "x"}, "Name is required"},
		{"missing email", ProfileInput{Name: "V", Address: "x"}, "Email is required"},
		{"bad email", ProfileInput{Name: "V", Email: "nope", Address: "x"}, "Email must be a valid address"},
		{"blank address", ProfileInput{Name: "V", Email: "v@dev.example"}, "Address is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveProfile(ctx, user.ID, tt.in)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}
