package repository

import (
	"context"
)

const createAuditEntry = `
INSERT INTO audit_logs (actor_id, action, entity_type, entity_id, detail)
VALUES ($1, $2, $3, NULLIF($4, '00000000-0000-0000-0000-000000000000'::uuid), $5)
`

// CreateAuditEntry appends one row to the audit log. The table is append-only;
// for POS refunds it is the system of record.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) error {
	detail := arg.Detail
	if len(detail) == 0 {
		detail = []byte("{}")
	}
	_, err := q.db.Exec(ctx, createAuditEntry,
		arg.ActorID, arg.Action, arg.EntityType, arg.EntityID, detail)
	return err
}
