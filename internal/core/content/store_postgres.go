// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readverse/internal/platform/database/schema"
	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
	"github.com/taibuivan/readverse/pkg/slice"
)

// PostgresRepository stores contents in catalog.content.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	contentColumns = strings.Join(schema.CatalogContent.Columns(), ", ")
	summaryColumns = strings.Join(schema.CatalogContent.SummaryColumns(), ", ")
)

// sortColumns maps sort fields onto catalog.content columns.
var sortColumns = map[SortField]string{
	SortRating:            schema.CatalogContent.Rating,
	SortViews:             schema.CatalogContent.NoOfViews,
	SortSubscribers:       schema.CatalogContent.NoOfSubscribers,
	SortCreatedAt:         schema.CatalogContent.CreatedAt,
	SortChaptersUpdatedOn: schema.CatalogContent.ChaptersUpdatedOn,
}

func (repository *PostgresRepository) Create(context context.Context, content *Content) error {
	placeholders := make([]string, len(schema.CatalogContent.Columns()))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.CatalogContent.Table, contentColumns, strings.Join(placeholders, ", "))

	_, err := repository.db.Exec(context, query,
		content.ID, content.Title, content.Slug, tagStrings(content.Tags), string(content.Status),
		nonNil(content.GenreIDs), content.Rating, content.NoOfViews, content.NoOfSubscribers,
		content.Author, nonNil(content.Synonyms), content.Description, content.Thumbnail, content.Poster,
		nonNil(content.ImagesAndWallpapers), content.ChaptersUpdatedOn, content.CreatedAt, content.UpdatedAt,
	)
	return dberr.Wrap(err, "insert_content")
}

func (repository *PostgresRepository) Update(context context.Context, content *Content) error {
	table := schema.CatalogContent
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13
		WHERE %s = $1`,
		table.Table,
		table.Title, table.Slug, table.Tags, table.Status, table.GenreIDs, table.Author,
		table.Synonyms, table.Description, table.Thumbnail, table.Poster, table.Images, table.UpdatedAt,
		table.ID,
	)

	tag, err := repository.db.Exec(context, query,
		content.ID, content.Title, content.Slug, tagStrings(content.Tags), string(content.Status),
		nonNil(content.GenreIDs), content.Author, nonNil(content.Synonyms), content.Description,
		content.Thumbnail, content.Poster, nonNil(content.ImagesAndWallpapers), content.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_content")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Content, error) {
	return repository.findOne(context, schema.CatalogContent.ID, id, "find_content_by_id")
}

func (repository *PostgresRepository) FindByTitle(context context.Context, title string) (*Content, error) {
	return repository.findOne(context, schema.CatalogContent.Title, title, "find_content_by_title")
}

func (repository *PostgresRepository) List(context context.Context, query ListQuery) ([]*Summary, error) {
	statement, args := postgresListSQL(query)
	return repository.querySummaries(context, "list_contents", statement, args...)
}

func (repository *PostgresRepository) ListPage(context context.Context, params pagination.Params) ([]*Summary, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogContent.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_contents")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC LIMIT $1 OFFSET $2`,
		summaryColumns, schema.CatalogContent.Table, schema.CatalogContent.CreatedAt, schema.CatalogContent.ID)

	summaries, err := repository.querySummaries(context, "list_content_page", query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (repository *PostgresRepository) findOne(context context.Context, column, value, action string) (*Content, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, contentColumns, schema.CatalogContent.Table, column)

	var (
		content Content
		tags    []string
		status  string
	)
	err := repository.db.QueryRow(context, query, value).Scan(
		&content.ID, &content.Title, &content.Slug, &tags, &status, &content.GenreIDs,
		&content.Rating, &content.NoOfViews, &content.NoOfSubscribers, &content.Author,
		&content.Synonyms, &content.Description, &content.Thumbnail, &content.Poster,
		&content.ImagesAndWallpapers, &content.ChaptersUpdatedOn, &content.CreatedAt, &content.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	content.Tags = toTags(tags)
	content.Status = Status(status)
	return &content, nil
}

func (repository *PostgresRepository) querySummaries(context context.Context, action, query string, args ...any) ([]*Summary, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Summary, error) {
		var (
			summary   Summary
			tags      []string
			status    string
			updatedOn *time.Time
		)
		err := row.Scan(
			&summary.ID, &summary.Title, &summary.Slug, &tags, &status, &summary.GenreIDs,
			&summary.Rating, &summary.NoOfViews, &summary.NoOfSubscribers, &summary.Author,
			&summary.Thumbnail, &updatedOn, &summary.CreatedAt, &summary.UpdatedAt,
		)
		summary.Tags = toTags(tags)
		summary.Status = Status(status)
		summary.ChaptersUpdatedOn = updatedOn
		return &summary, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return summaries, nil
}

// # Query Translation

// postgresListSQL renders a [ListQuery] as a SELECT over the summary columns.
func postgresListSQL(query ListQuery) (string, []any) {
	table := schema.CatalogContent

	var (
		builder strings.Builder
		args    []any
	)
	fmt.Fprintf(&builder, "SELECT %s FROM %s", summaryColumns, table.Table)

	switch query.Match.Kind {
	case MatchTags:
		args = append(args, nonNil(query.Match.Values))
		fmt.Fprintf(&builder, " WHERE %s && $%d", table.Tags, len(args))
	case MatchStatus:
		status := ""
		if len(query.Match.Values) > 0 {
			status = query.Match.Values[0]
		}
		args = append(args, status)
		fmt.Fprintf(&builder, " WHERE %s = $%d", table.Status, len(args))
	case MatchGenres:
		args = append(args, nonNil(query.Match.Values))
		fmt.Fprintf(&builder, " WHERE %s && $%d", table.GenreIDs, len(args))
	}

	if len(query.Sort) > 0 {
		orderBy := make([]string, 0, len(query.Sort))
		for _, key := range query.Sort {
			direction := "ASC NULLS FIRST"
			if key.Desc {
				direction = "DESC NULLS LAST"
			}
			orderBy = append(orderBy, sortColumns[key.Field]+" "+direction)
		}
		fmt.Fprintf(&builder, " ORDER BY %s", strings.Join(orderBy, ", "))
	}

	if query.Limit > 0 {
		args = append(args, query.Limit)
		fmt.Fprintf(&builder, " LIMIT $%d", len(args))
	}

	return builder.String(), args
}

func tagStrings(tags []Tag) []string {
	if tags == nil {
		return []string{}
	}
	return slice.Map(tags, func(tag Tag) string { return string(tag) })
}

func toTags(values []string) []Tag {
	return slice.Map(values, func(value string) Tag { return Tag(value) })
}
