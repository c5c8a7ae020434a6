package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/tasklist/internal/model"
)

// SQLiteRepository keeps the task list in a single table keyed by position.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, ioErr("open sqlite", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, ioErr("open sqlite", path, err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	repo.path = path
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, completed FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, ioErr("query", r.path, err)
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		var task model.Task
		var completed int
		if err := rows.Scan(&task.Name, &completed); err != nil {
			return nil, ioErr("scan", r.path, err)
		}
		task.Completed = completed == 1
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("query", r.path, err)
	}
	return out, nil
}

// Save replaces every row inside one transaction, so a failed save leaves
// the previous list intact.
func (r *SQLiteRepository) Save(ctx context.Context, tasks []model.Task) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ioErr("begin", r.path, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return ioErr("clear", r.path, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, name, completed) VALUES (?, ?, ?)`)
	if err != nil {
		return ioErr("prepare", r.path, err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err = stmt.ExecContext(ctx, i, task.Name, boolInt(task.Completed)); err != nil {
			return ioErr(fmt.Sprintf("insert task %d into", i), r.path, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return ioErr("commit", r.path, err)
	}
	return nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
