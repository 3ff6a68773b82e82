package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	ThrottleRejectEvent   AuditEventType = "LOGIN_THROTTLED"
	PracticeRegisteredEvent AuditEventType = "PRACTICE_REGISTERED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	PasswordChangedEvent  AuditEventType = "PASSWORD_CHANGED"

	// Session events
	SessionIssuedEvent  AuditEventType = "SESSION_ISSUED"
	SessionRevokedEvent AuditEventType = "SESSION_REVOKED"

	// Operational events
	LedgerWriteFailureEvent AuditEventType = "LEDGER_WRITE_FAILED"
)

// AuditEvent represents a security-relevant event for operational logging.
// It never carries secrets; the email is the only identity field on
// pre-authentication events.
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	TenantID  uint           `json:"tenant_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewAuditEvent creates an audit event with common fields populated.
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithUser sets the user and tenant fields.
func (e *AuditEvent) WithUser(userID, tenantID uint) *AuditEvent {
	e.UserID = userID
	e.TenantID = tenantID
	return e
}

// WithEmail sets the email field.
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithOrigin sets the request origin fields.
func (e *AuditEvent) WithOrigin(origin Origin) *AuditEvent {
	e.IPAddress = origin.IPAddress
	e.UserAgent = origin.UserAgent
	return e
}

// WithSession sets the session id field.
func (e *AuditEvent) WithSession(sessionID string) *AuditEvent {
	e.SessionID = sessionID
	return e
}

// WithError marks the event failed and records the reason.
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
