package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// marshalBloque serializa un bloque de documento a JSONB. Un puntero nil se
// persiste como NULL.
func marshalBloque(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal bloque: %w", err)
	}
	return b, nil
}

// unmarshalBloque deserializa un bloque JSONB en dest; NULL deja dest sin tocar.
func unmarshalBloque(b []byte, dest any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("unmarshal bloque: %w", err)
	}
	return nil
}
