package domain

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "administrator", input: "administrator", want: RoleAdministrator},
		{name: "practitioner", input: "practitioner", want: RolePractitioner},
		{name: "assistant", input: "assistant", want: RoleAssistant},
		{name: "intern", input: "intern", want: RoleIntern},
		{name: "external", input: "external", want: RoleExternal},
		{name: "mixed case is accepted", input: "Administrator", want: RoleAdministrator},
		{name: "surrounding whitespace is accepted", input: "  intern ", want: RoleIntern},
		{name: "unknown role is rejected", input: "superuser", wantErr: true},
		{name: "empty string is rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got role %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdministrator, RolePractitioner, RoleAssistant, RoleIntern, RoleExternal} {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("expected role outside the closed set to be invalid")
	}
}

func TestRoleSetContains(t *testing.T) {
	set := NewRoleSet(RoleAdministrator, RolePractitioner)

	if !set.Contains(RoleAdministrator) {
		t.Error("expected administrator to be a member")
	}
	if !set.Contains(RolePractitioner) {
		t.Error("expected practitioner to be a member")
	}
	if set.Contains(RoleIntern) {
		t.Error("expected intern not to be a member")
	}
	if NewRoleSet().Contains(RoleAdministrator) {
		t.Error("expected empty set to contain nothing")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Admin@A.Test", "admin@a.test"},
		{"  admin@a.test  ", "admin@a.test"},
		{"ADMIN@A.TEST", "admin@a.test"},
		{"admin@a.test", "admin@a.test"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUserAccessExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "no expiry never expires", user: User{}, want: false},
		{name: "future expiry is not expired", user: User{AccessExpiresAt: &future}, want: false},
		{name: "past expiry is expired", user: User{AccessExpiresAt: &past}, want: true},
		{name: "expiry exactly now is expired", user: User{AccessExpiresAt: &now}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.AccessExpired(now); got != tt.want {
				t.Errorf("AccessExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	s := Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Error("session with future expiry should not be expired")
	}

	s = Session{ExpiresAt: now.Add(-time.Minute)}
	if !s.Expired(now) {
		t.Error("session with past expiry should be expired")
	}

	s = Session{ExpiresAt: now}
	if !s.Expired(now) {
		t.Error("session expiring exactly now should be expired")
	}
}

func TestAuditEventBuilders(t *testing.T) {
	ev := NewAuditEvent(UserLoginFailureEvent).
		WithEmail("admin@a.test").
		WithOrigin(Origin{IPAddress: "203.0.113.7", UserAgent: "curl/8"}).
		WithError(ErrInvalidCredentials)

	if ev.EventType != UserLoginFailureEvent {
		t.Errorf("unexpected event type %q", ev.EventType)
	}
	if ev.Success {
		t.Error("WithError should mark the event failed")
	}
	if ev.ErrorMsg != ErrInvalidCredentials.Error() {
		t.Errorf("unexpected error message %q", ev.ErrorMsg)
	}
	if ev.Email != "admin@a.test" || ev.IPAddress != "203.0.113.7" || ev.UserAgent != "curl/8" {
		t.Error("builder fields not populated")
	}
	if ev.Timestamp.IsZero() {
		t.Error("timestamp should be populated")
	}
}
