package database

import (
	"context"
	_ "embed"

	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

// Schema is the DDL for the candidate tables.
//
//go:embed schema.sql
var Schema string

// EnsureSchema creates the candidate tables when they do not exist.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, Schema); err != nil {
		return apperrors.NewExternalError("failed to apply candidate schema", err)
	}
	return nil
}
