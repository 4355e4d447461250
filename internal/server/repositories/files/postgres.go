package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/dbid"
)

const selectColumns = `id, user_id, name, type, is_public, parent_id, content_ref, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) Insert(ctx context.Context, f *models.FileRecord) (*models.FileRecord, error) {
	userID, ok := dbid.Parse(f.UserID)
	if !ok {
		return nil, fmt.Errorf("db error: invalid user id %q", f.UserID)
	}
	parentID, ok := dbid.ParseParent(f.ParentID)
	if !ok {
		return nil, fmt.Errorf("db error: invalid parent id %q", f.ParentID)
	}

	query :=
		`INSERT INTO files (user_id, name, type, is_public, parent_id, content_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	contentRef := sql.NullString{String: f.ContentRef, Valid: f.ContentRef != ""}

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, f.Name, string(f.Type), f.IsPublic, parentID, contentRef).
		Scan(&id, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	f.ID = dbid.Format(id)
	return f, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.FileRecord, error) {
	key, ok := dbid.Parse(id)
	if !ok {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + selectColumns + ` FROM files WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, key))
}

func (r *PostgresRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*models.FileRecord, error) {
	key, ok := dbid.Parse(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	owner, ok := dbid.Parse(userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + selectColumns + ` FROM files WHERE id = $1 AND user_id = $2`

	return r.scanOne(r.db.QueryRowContext(ctx, query, key, owner))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.FileRecord, error) {
	result := make([]*models.FileRecord, 0)

	owner, ok := dbid.Parse(userID)
	if !ok {
		return result, nil
	}
	parent, ok := dbid.ParseParent(parentID)
	if !ok {
		return result, nil
	}

	query :=
		`SELECT ` + selectColumns + ` FROM files
		 WHERE user_id = $1 AND parent_id = $2
		 ORDER BY id
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, owner, parent, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) SetPublished(ctx context.Context, id string, isPublic bool) (*models.FileRecord, error) {
	key, ok := dbid.Parse(id)
	if !ok {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE files SET is_public = $2
		 WHERE id = $1
		 RETURNING ` + selectColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, key, isPublic))
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.FileRecord, error) {
	f, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func scanRecord(s rowScanner) (*models.FileRecord, error) {
	var (
		id, userID, parentID int64
		kind                 string
		contentRef           sql.NullString
	)
	f := &models.FileRecord{}

	if err := s.Scan(&id, &userID, &f.Name, &kind, &f.IsPublic, &parentID, &contentRef, &f.CreatedAt); err != nil {
		return nil, err
	}

	f.ID = dbid.Format(id)
	f.UserID = dbid.Format(userID)
	f.ParentID = dbid.Format(parentID)
	f.Type = models.Kind(kind)
	if contentRef.Valid {
		f.ContentRef = contentRef.String
	}
	return f, nil
}
