package session

import (
	"testing"

	"careerscope/internal/types"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()

	if s.Authenticated() {
		t.Error("New session should not be authenticated")
	}
	if s.User() != nil {
		t.Error("New session should have no user")
	}

	s.Login(types.UserRecord{Name: "Jane Doe", Email: "jane@example.com", UserID: "u-1"})

	if !s.Authenticated() {
		t.Error("Session should be authenticated after login")
	}
	user := s.User()
	if user == nil {
		t.Fatal("Expected user after login")
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Expected email 'jane@example.com', got %q", user.Email)
	}

	s.Logout()

	if s.Authenticated() {
		t.Error("Session should not be authenticated after logout")
	}
	if s.User() != nil {
		t.Error("Expected no user after logout")
	}
}

func TestSessionUserReturnsCopy(t *testing.T) {
	s := New()
	s.Login(types.UserRecord{Name: "Jane Doe", Email: "jane@example.com"})

	user := s.User()
	user.Email = "mutated@example.com"

	if got := s.User().Email; got != "jane@example.com" {
		t.Errorf("Session state was mutated through a returned pointer: %q", got)
	}
}

func TestSessionListeners(t *testing.T) {
	s := New()

	var events []string
	s.Subscribe(func(user *types.UserRecord) {
		if user == nil {
			events = append(events, "logout")
		} else {
			events = append(events, "login:"+user.Email)
		}
	})

	s.Login(types.UserRecord{Email: "jane@example.com"})
	s.Logout()
	s.Login(types.UserRecord{Email: "john@example.com"})

	expected := []string{"login:jane@example.com", "logout", "login:john@example.com"}
	if len(events) != len(expected) {
		t.Fatalf("Expected %d notifications, got %d: %v", len(expected), len(events), events)
	}
	for i, e := range expected {
		if events[i] != e {
			t.Errorf("Notification %d: expected %q, got %q", i, e, events[i])
		}
	}
}

func TestSessionReLogin(t *testing.T) {
	// Logging in again replaces the record without an intermediate logout
	s := New()
	s.Login(types.UserRecord{Email: "jane@example.com"})
	s.Login(types.UserRecord{Email: "john@example.com"})

	if got := s.User().Email; got != "john@example.com" {
		t.Errorf("Expected replaced user 'john@example.com', got %q", got)
	}
}
