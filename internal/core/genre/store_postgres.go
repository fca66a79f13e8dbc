// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readverse/internal/platform/database/schema"
	"github.com/taibuivan/readverse/internal/platform/dberr"
)

// PostgresRepository stores genres in catalog.genre.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var genreColumns = strings.Join(schema.CatalogGenre.Columns(), ", ")

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)`, schema.CatalogGenre.Table, genreColumns)

	_, err := repository.db.Exec(context, query, genre.ID, genre.Name, genre.CreatedAt, genre.UpdatedAt)
	return dberr.Wrap(err, "insert_genre")
}

func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	return repository.query(context, "list_genres", query)
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	genre := &Genre{}
	err := repository.db.QueryRow(context, query, name).Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_genre_by_name")
	}
	return genre, nil
}

func (repository *PostgresRepository) FindByNames(context context.Context, names []string) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.Name)

	return repository.query(context, "find_genres_by_names", query, names)
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogGenre.Name)

	return repository.query(context, "find_genres_by_ids", query, ids)
}

func (repository *PostgresRepository) query(context context.Context, action, query string, args ...any) ([]*Genre, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Genre, error) {
		genre := &Genre{}
		err := row.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
		return genre, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return genres, nil
}
