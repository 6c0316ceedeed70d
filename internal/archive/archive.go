// Package archive keeps an audit trail of accepted training batches in
// Postgres. It is optional: with no pool configured every call is a no-op, and
// archive failures never fail a retrain.
package archive

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_samples (
	id UUID PRIMARY KEY,
	batch_id UUID NOT NULL,
	features DOUBLE PRECISION[] NOT NULL,
	label SMALLINT NOT NULL,
	model_version TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_training_samples_batch ON training_samples (batch_id);
`

type TrainingArchive struct {
	pg     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// New connects to Postgres and ensures the schema. url may be empty, in which
// case the archive is disabled.
func New(ctx context.Context, url string, logger *zap.Logger) (*TrainingArchive, error) {
	a := &TrainingArchive{logger: logger.Sugar()}
	if url == "" {
		return a, nil
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("archive: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("archive: ensure schema: %w", err)
	}
	a.pg = pool
	return a, nil
}

// Enabled reports whether a backing pool is configured.
func (a *TrainingArchive) Enabled() bool { return a.pg != nil }

// InsertBatch stores one accepted retrain batch under a shared batch id.
func (a *TrainingArchive) InsertBatch(ctx context.Context, vectors [][]float64, labels []int, modelVersion string) {
	if a.pg == nil {
		return
	}

	batchID := uuid.New()
	rows := make([][]any, len(vectors))
	for i, vec := range vectors {
		rows[i] = []any{uuid.New(), batchID, vec, int16(labels[i]), modelVersion}
	}

	_, err := a.pg.CopyFrom(ctx,
		pgx.Identifier{"training_samples"},
		[]string{"id", "batch_id", "features", "label", "model_version"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		a.logger.Errorw("Failed to archive training batch", "error", err, "batch_id", batchID, "samples", len(rows))
		return
	}
	a.logger.Infow("Archived training batch", "batch_id", batchID, "samples", len(rows))
}

func (a *TrainingArchive) Close() {
	if a.pg != nil {
		a.pg.Close()
	}
}
