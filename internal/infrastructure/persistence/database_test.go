package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("connection refused")
	checkViolation := &pgconn.PgError{Code: "23514"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, shared.ErrNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), shared.ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, shared.ErrAlreadyExists},
		{"raw postgres duplicate", &pgconn.PgError{Code: "23505"}, shared.ErrAlreadyExists},
		{"translated foreign key", fmt.Errorf("save product: %w", gorm.ErrForeignKeyViolated), shared.ErrInvalidReference},
		{"raw postgres foreign key", &pgconn.PgError{Code: "23503"}, shared.ErrInvalidReference},
		{"other postgres error", checkViolation, checkViolation},
		{"unrelated", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateError(tt.in))
		})
	}
}
