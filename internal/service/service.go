// Package service contains the business logic for Tindahan. Services depend
// on repository interfaces and are constructed once at startup.
package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// pgUUID converts a uuid.UUID to its pgtype form.
func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// parseUUID parses a string ID into pgtype form.
func parseUUID(s string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(s); err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid ID %q: %w", s, err)
	}
	return id, nil
}

// uuidIsZero reports whether a pgtype.UUID is unset or the zero UUID.
func uuidIsZero(id pgtype.UUID) bool {
	return !id.Valid || id.Bytes == [16]byte{}
}

// uuidString renders a pgtype.UUID in canonical form.
func uuidString(id pgtype.UUID) string {
	return uuid.UUID(id.Bytes).String()
}
