// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readverse/internal/platform/database/schema"
	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
)

// PostgresRepository stores comments in social.comment.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var commentColumns = strings.Join(schema.SocialComment.Columns(), ", ")

// threadClause matches a thread; $1 is the content id and $2 the chapter id,
// NULL for content-level comments.
var threadClause = fmt.Sprintf("%s = $1 AND %s IS NOT DISTINCT FROM $2",
	schema.SocialComment.ContentID, schema.SocialComment.ChapterID)

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		schema.SocialComment.Table, commentColumns)

	_, err := repository.db.Exec(context, query,
		comment.ID, comment.ParentID, comment.RootID, comment.Message, comment.ContentID, nullable(comment.ChapterID),
		comment.User.ID, comment.User.Username, comment.User.Avatar, comment.UpVotes, comment.DownVotes,
		comment.IsEdited, comment.IsReported, comment.IsDeleted, comment.CreatedAt, comment.UpdatedAt,
	)
	return dberr.Wrap(err, "insert_comment")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, commentColumns, schema.SocialComment.Table, schema.SocialComment.ID)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	comment, err := pgx.CollectExactlyOneRow(rows, scanComment)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	table := schema.SocialComment
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
		table.Table, table.Message, table.IsEdited, table.IsReported, table.IsDeleted, table.UpdatedAt, table.ID)

	tag, err := repository.db.Exec(context, query,
		comment.ID, comment.Message, comment.IsEdited, comment.IsReported, comment.IsDeleted, comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListRoots(context context.Context, thread Thread, sortKey SortKey, params pagination.Params) ([]*Comment, error) {
	table := schema.SocialComment
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND %s = $3 ORDER BY %s LIMIT $4 OFFSET $5`,
		commentColumns, table.Table, threadClause, table.ParentID, postgresRootOrder(sortKey))

	return repository.queryComments(context, "list_root_comments", query,
		thread.ContentID, nullable(thread.ChapterID), RootParent, params.Limit, params.Offset())
}

func (repository *PostgresRepository) ListReplies(context context.Context, rootIDs []string) ([]*Comment, error) {
	table := schema.SocialComment
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) AND %s <> $2 ORDER BY %s ASC`,
		commentColumns, table.Table, table.RootID, table.ParentID, table.CreatedAt)

	return repository.queryComments(context, "list_replies", query, rootIDs, RootParent)
}

func (repository *PostgresRepository) Count(context context.Context, thread Thread) (int, int, error) {
	table := schema.SocialComment
	query := fmt.Sprintf(`SELECT COUNT(*) FILTER (WHERE %s = $3), COUNT(*) FROM %s WHERE %s`,
		table.ParentID, table.Table, threadClause)

	var roots, total int
	err := repository.db.QueryRow(context, query, thread.ContentID, nullable(thread.ChapterID), RootParent).Scan(&roots, &total)
	if err != nil {
		return 0, 0, dberr.Wrap(err, "count_comments")
	}
	return roots, total, nil
}

func (repository *PostgresRepository) queryComments(context context.Context, action, query string, args ...any) ([]*Comment, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	comments, err := pgx.CollectRows(rows, scanComment)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return comments, nil
}

func scanComment(row pgx.CollectableRow) (*Comment, error) {
	var (
		comment   Comment
		chapterID *string
	)
	err := row.Scan(
		&comment.ID, &comment.ParentID, &comment.RootID, &comment.Message, &comment.ContentID, &chapterID,
		&comment.User.ID, &comment.User.Username, &comment.User.Avatar, &comment.UpVotes, &comment.DownVotes,
		&comment.IsEdited, &comment.IsReported, &comment.IsDeleted, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if chapterID != nil {
		comment.ChapterID = *chapterID
	}
	return &comment, err
}

// postgresRootOrder is the ORDER BY clause of a root page.
func postgresRootOrder(sortKey SortKey) string {
	table := schema.SocialComment
	switch sortKey {
	case SortBest:
		return fmt.Sprintf("(%s - %s) DESC, %s DESC, %s ASC", table.UpVotes, table.DownVotes, table.CreatedAt, table.ID)
	case SortOldest:
		return fmt.Sprintf("%s ASC, %s ASC", table.CreatedAt, table.ID)
	default:
		return fmt.Sprintf("%s DESC, %s ASC", table.CreatedAt, table.ID)
	}
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
