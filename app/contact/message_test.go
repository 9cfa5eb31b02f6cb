package contact

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{"new", "read", "responded"} {
		if !ValidStatus(status) {
			t.Errorf("Expected '%s' to be valid", status)
		}
	}

	for _, status := range []string{"", "NEW", "archived", "deleted"} {
		if ValidStatus(status) {
			t.Errorf("Expected '%s' to be invalid", status)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{email: "rahul@example.com", want: true},
		{email: "first.last+tag@sub.example.co.uk", want: true},
		{email: "UPPER@EXAMPLE.ORG", want: true},
		{email: "invalid-email", want: false},
		{email: "missing@tld", want: false},
		{email: "@example.com", want: false},
		{email: "spaces in@example.com", want: false},
		{email: "short@example.c", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidEmail(tt.email); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSubmissionClean(t *testing.T) {
	cleaned := Submission{
		Name:    "  Ada Lovelace ",
		Email:   " Ada.Lovelace@Example.COM\n",
		Message: "\tHello there!  ",
	}.Clean()

	if cleaned.Name != "Ada Lovelace" {
		t.Errorf("Expected name 'Ada Lovelace', got '%s'", cleaned.Name)
	}
	if cleaned.Email != "ada.lovelace@example.com" {
		t.Errorf("Expected email 'ada.lovelace@example.com', got '%s'", cleaned.Email)
	}
	if cleaned.Message != "Hello there!" {
		t.Errorf("Expected message 'Hello there!', got '%s'", cleaned.Message)
	}
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	msg, err := NewMessage(Submission{Name: "Ada", Email: "ADA@example.com", Message: "Hi"}, now)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := uuid.Parse(msg.ID); err != nil {
		t.Errorf("Expected UUID message ID, got '%s'", msg.ID)
	}
	if msg.Status != StatusNew {
		t.Errorf("Expected status 'new', got '%s'", msg.Status)
	}
	if msg.Email != "ada@example.com" {
		t.Errorf("Expected lower-cased email, got '%s'", msg.Email)
	}
	if msg.SubmittedAt.Location() != time.UTC || !msg.SubmittedAt.Equal(now) {
		t.Errorf("Expected submittedAt %v in UTC, got %v", now.UTC(), msg.SubmittedAt)
	}
	if msg.UpdatedAt != nil {
		t.Error("Expected new message to have no updatedAt")
	}

	other, _ := NewMessage(Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, now)
	if other.ID == msg.ID {
		t.Error("Expected generated IDs to be unique")
	}
}

func TestNewMessageRejectsBlankFields(t *testing.T) {
	tests := []struct {
		name       string
		submission Submission
		field      string
	}{
		{name: "blank name", submission: Submission{Name: "   ", Email: "a@example.com", Message: "Hi"}, field: "name"},
		{name: "blank message", submission: Submission{Name: "Ada", Email: "a@example.com", Message: "\n\t"}, field: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMessage(tt.submission, time.Now())
			if err == nil {
				t.Fatal("Expected error for blank field")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error to mention '%s', got '%v'", tt.field, err)
			}
		})
	}
}

func TestListFilterNormalize(t *testing.T) {
	tests := []struct {
		name   string
		filter ListFilter
		want   ListFilter
	}{
		{name: "defaults", filter: ListFilter{}, want: ListFilter{Skip: 0, Limit: 50}},
		{name: "negative skip", filter: ListFilter{Skip: -3, Limit: 10}, want: ListFilter{Skip: 0, Limit: 10}},
		{name: "limit above max", filter: ListFilter{Skip: 5, Limit: 500}, want: ListFilter{Skip: 5, Limit: 100}},
		{name: "status kept", filter: ListFilter{Status: "read", Limit: 20}, want: ListFilter{Status: "read", Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Normalize(); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
