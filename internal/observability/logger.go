package observability

import (
	"go.uber.org/zap"

	"github.com/superhecht1/praxida/domain"
)

// NewLogger builds the process logger. Debug mode switches to the human
// readable development encoder.
func NewLogger(mode string) (*zap.Logger, error) {
	if mode == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Audit writes a structured audit event at the appropriate level. Failed
// operational events (ledger writes) go out at Error so they are alertable;
// ordinary authentication outcomes stay at Info.
func Audit(log *zap.Logger, ev *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event", string(ev.EventType)),
		zap.Bool("success", ev.Success),
		zap.Time("ts", ev.Timestamp),
	}
	if ev.UserID != 0 {
		fields = append(fields, zap.Uint("user_id", ev.UserID))
	}
	if ev.TenantID != 0 {
		fields = append(fields, zap.Uint("tenant_id", ev.TenantID))
	}
	if ev.Email != "" {
		fields = append(fields, zap.String("email", ev.Email))
	}
	if ev.SessionID != "" {
		fields = append(fields, zap.String("session_id", ev.SessionID))
	}
	if ev.IPAddress != "" {
		fields = append(fields, zap.String("ip", ev.IPAddress))
	}
	if ev.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", ev.UserAgent))
	}
	if ev.ErrorMsg != "" {
		fields = append(fields, zap.String("error", ev.ErrorMsg))
	}

	if ev.EventType == domain.LedgerWriteFailureEvent {
		log.Error("audit", fields...)
		return
	}
	log.Info("audit", fields...)
}
