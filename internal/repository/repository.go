package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of sqlx.DB / sqlx.Tx the adapters rely on, so queries
// run the same inside and outside a transaction.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Sequence names backing the surrogate keys. Oracle sequences are monotonic
// per insert, which is what makes ORDER BY id the canonical question order.
const (
	articlesSeq  = "articles_seq"
	quizzesSeq   = "quizzes_seq"
	questionsSeq = "questions_seq"
)

// nextID fetches the next value of an id sequence using the given executor.
func nextID(ctx context.Context, exec DBTX, sequence string) (int64, error) {
	var id int64
	if err := exec.GetContext(ctx, &id, "SELECT "+sequence+".NEXTVAL FROM DUAL"); err != nil {
		return 0, err
	}
	return id, nil
}
