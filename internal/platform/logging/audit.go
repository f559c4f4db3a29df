package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// LogAuditEvent logs a structured audit event for a mutation on user data.
//
// Args:
//   - action: what was done ("create", "update", "delete", "like", ...)
//   - userID: the user performing the action
//   - resourceType: "profile", "pantry_item", "meal_plan_entry", "liked_recipe"
//   - resourceID: identifier of the touched document
//   - result: AuditSuccess or AuditFailure
//   - details: optional audit-safe details (never raw field values)
func LogAuditEvent(
	ctx context.Context,
	action, userID, resourceType, resourceID, result string,
	details map[string]any,
) {
	LoggerFromContext(ctx).Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.user_id", userID),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
