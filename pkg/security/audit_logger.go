package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audited event
type EventType string

const (
	EventStatusChanged      EventType = "application_status_changed"
	EventHireRevoked        EventType = "hire_revoked"
	EventApplicantsExported EventType = "applicants_exported"
	EventUploadRejected     EventType = "resume_upload_rejected"
	EventMalwareDetected    EventType = "malware_detected"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventPasswordChanged    EventType = "password_changed"
	EventAccountDeactivated EventType = "account_deactivated"
	EventPasswordBlocked    EventType = "password_attempts_blocked"
)

// Severity is derived from EventType, never supplied by callers
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

var eventSeverity = map[EventType]Severity{
	EventStatusChanged:      SeverityINFO,
	EventApplicantsExported: SeverityINFO,
	EventPasswordChanged:    SeverityINFO,
	EventAccountDeactivated: SeverityINFO,
	EventHireRevoked:        SeverityWARN,
	EventUploadRejected:     SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventUnauthorizedAccess: SeverityHIGH,
	EventPasswordBlocked:    SeverityHIGH,
	EventMalwareDetected:    SeverityCRITICAL,
}

func SeverityOf(event EventType) Severity {
	if s, ok := eventSeverity[event]; ok {
		return s
	}
	return SeverityWARN
}

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH, SeverityCRITICAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// AuditEvent is one structured audit record
type AuditEvent struct {
	Timestamp time.Time
	Event     EventType
	ActorID   string // user id from the bearer token; hashed in output
	ActorRole string
	IP        string
	RequestID string
	Details   map[string]any
}

// AuditLogger writes audit events as structured zap entries. A nil
// *AuditLogger is valid and discards everything.
type AuditLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewAuditLogger builds a production zap logger writing JSON to stdout.
func NewAuditLogger(serviceName, environment string) *AuditLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewAuditLoggerWithZap(logger, serviceName, environment)
}

// NewAuditLoggerWithZap wraps an existing zap logger (tests use an observer core).
func NewAuditLoggerWithZap(logger *zap.Logger, serviceName, environment string) *AuditLogger {
	return &AuditLogger{
		zapLogger:   logger.Named("audit"),
		serviceName: serviceName,
		environment: environment,
	}
}

func (al *AuditLogger) Log(ctx context.Context, event AuditEvent) {
	if al == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	severity := SeverityOf(event.Event)

	fields := []zap.Field{
		zap.String("service", al.serviceName),
		zap.String("env", al.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor", HashValue(event.ActorID)))
	}
	if event.ActorRole != "" {
		fields = append(fields, zap.String("actor_role", event.ActorRole))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	al.zapLogger.Log(severity.zapLevel(), string(event.Event), fields...)
}

// LogStatusChange records every applicant status overwrite. A hired →
// rejected overwrite is additionally recorded as hire_revoked.
func (al *AuditLogger) LogStatusChange(ctx context.Context, recruiterID, jobID, candidateID, previous, next string, revoked bool) {
	details := map[string]any{
		"job_id":          jobID,
		"candidate_id":    candidateID,
		"previous_status": previous,
		"status":          next,
	}
	al.Log(ctx, AuditEvent{
		Event:     EventStatusChanged,
		ActorID:   recruiterID,
		ActorRole: "recruiter",
		Details:   details,
	})
	if revoked {
		al.Log(ctx, AuditEvent{
			Event:     EventHireRevoked,
			ActorID:   recruiterID,
			ActorRole: "recruiter",
			Details:   details,
		})
	}
}

func (al *AuditLogger) LogUploadRejected(ctx context.Context, candidateID, reason string) {
	al.Log(ctx, AuditEvent{
		Event:     EventUploadRejected,
		ActorID:   candidateID,
		ActorRole: "candidate",
		Details:   map[string]any{"reason": reason},
	})
}

func (al *AuditLogger) LogMalwareDetected(ctx context.Context, candidateID, scanner, threat string) {
	al.Log(ctx, AuditEvent{
		Event:     EventMalwareDetected,
		ActorID:   candidateID,
		ActorRole: "candidate",
		Details:   map[string]any{"scanner": scanner, "threat": threat},
	})
}

func (al *AuditLogger) LogRateLimitTriggered(ctx context.Context, ip, userID, requestID, endpoint string) {
	al.Log(ctx, AuditEvent{
		Event:     EventRateLimitTriggered,
		ActorID:   userID,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]any{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (al *AuditLogger) Sync() error {
	if al == nil {
		return nil
	}
	return al.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a short SHA256 digest so ids can be correlated without being logged
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
