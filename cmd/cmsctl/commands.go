// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/readverse/internal/app"
	"github.com/taibuivan/readverse/internal/core/content"
	"github.com/taibuivan/readverse/internal/platform/config"
	"github.com/taibuivan/readverse/internal/platform/migration"
	"github.com/taibuivan/readverse/migrations"
)

// withServices opens the configured backends for the duration of run.
func withServices(cmd *cobra.Command, current *session, run func(app.Services) error) error {
	backends, err := app.Open(cmd.Context(), current.cfg, current.log)
	if err != nil {
		return err
	}
	defer backends.Close()

	return run(backends.Services(current.cfg, current.log))
}

// # Genres

func NewGenreCommand(current *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genre",
		Short: "Manage genres",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, current, func(services app.Services) error {
				created, err := services.Genres.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created genre %q (%s)\n", created.Name, created.ID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List genres by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, current, func(services app.Services) error {
				genres, err := services.Genres.List(cmd.Context())
				if err != nil {
					return err
				}

				table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(table, "ID\tNAME")
				for _, genre := range genres {
					fmt.Fprintf(table, "%s\t%s\n", genre.ID, genre.Name)
				}
				return table.Flush()
			})
		},
	})

	return cmd
}

// # Contents

func NewContentCommand(current *session) *cobra.Command {
	var (
		filterBy string
		sortBy   string
		tags     []string
		genres   []string
		status   string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the catalogue",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List catalogue entries with the public listing filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := content.ListFilter{
				FilterBy: filterBy,
				SortBy:   sortBy,
				Status:   content.Status(status),
				Genres:   genres,
			}
			for _, tag := range tags {
				filter.Tags = append(filter.Tags, content.Tag(tag))
			}

			return withServices(cmd, current, func(services app.Services) error {
				summaries, err := services.Contents.List(cmd.Context(), filter, limit)
				if err != nil {
					return err
				}
				if len(summaries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No contents found")
					return nil
				}

				table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(table, "ID\tTITLE\tSTATUS\tTAGS\tVIEWS")
				for _, summary := range summaries {
					labels := make([]string, 0, len(summary.Tags))
					for _, tag := range summary.Tags {
						labels = append(labels, string(tag))
					}
					fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%d\n",
						summary.ID, summary.Title, summary.Status, strings.Join(labels, ","), summary.NoOfViews)
				}
				return table.Flush()
			})
		},
	}

	list.Flags().StringVar(&filterBy, "filter", "", "filter kind: tags, status or genres")
	list.Flags().StringVar(&sortBy, "sort", "", "sort key: trending, new or updatedToday")
	list.Flags().StringSliceVar(&tags, "tag", nil, "tag to match (repeatable)")
	list.Flags().StringSliceVar(&genres, "genre", nil, "genre name to match (repeatable)")
	list.Flags().StringVar(&status, "status", "", "status to match")
	list.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 uses the configured default)")

	cmd.AddCommand(list)
	return cmd
}

// # Migrations

var errNotPostgres = errors.New("migrations only apply when STORE_DRIVER=postgres")

func NewMigrateCommand(current *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if current.cfg.StoreDriver != config.StorePostgres {
				return errNotPostgres
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.RunUp(current.cfg.DatabaseURL, migrations.FS, current.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, dirty, err := migration.Version(current.cfg.DatabaseURL, migrations.FS, current.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	})

	return cmd
}
