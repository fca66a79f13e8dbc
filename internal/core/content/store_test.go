// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
)

func seedCatalogue() *MemoryRepository {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	updated := base.Add(48 * time.Hour)

	repo := NewMemoryRepository()
	repo.Seed(
		&Content{ID: "1", Title: "One", Tags: []Tag{TagFreeRead}, Status: StatusOngoing, GenreIDs: []string{"g1"}, Rating: 9, NoOfViews: 10, NoOfSubscribers: 1, CreatedAt: base},
		&Content{ID: "2", Title: "Two", Tags: []Tag{TagFreeRead, TagWeeklyNovel}, Status: StatusCompleted, GenreIDs: []string{"g2"}, Rating: 9, NoOfViews: 20, NoOfSubscribers: 1, CreatedAt: base.Add(time.Hour)},
		&Content{ID: "3", Title: "Three", Tags: []Tag{TagBannerContent}, Status: StatusOngoing, Rating: 9, NoOfViews: 20, NoOfSubscribers: 5, CreatedAt: base.Add(2 * time.Hour), ChaptersUpdatedOn: &updated},
		&Content{ID: "4", Title: "Four", Status: StatusAbandoned, GenreIDs: []string{"g1", "g2"}, Rating: 7.5, NoOfViews: 99, CreatedAt: base.Add(3 * time.Hour)},
	)
	return repo
}

func listIDs(t *testing.T, repo Repository, query ListQuery) []string {
	t.Helper()

	summaries, err := repo.List(context.Background(), query)
	require.NoError(t, err)

	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		ids = append(ids, summary.ID)
	}
	return ids
}

func TestMemoryRepository_List_Match(t *testing.T) {
	repo := seedCatalogue()

	assert.Equal(t, []string{"1", "3"}, listIDs(t, repo, ListQuery{Match: Match{Kind: MatchStatus, Values: []string{"Ongoing"}}}))
	assert.Equal(t, []string{"1", "2"}, listIDs(t, repo, ListQuery{Match: Match{Kind: MatchTags, Values: []string{"FreeRead"}}}))
	assert.Empty(t, listIDs(t, repo, ListQuery{Match: Match{Kind: MatchTags, Values: []string{}}}))
	assert.Equal(t, []string{"1", "4"}, listIDs(t, repo, ListQuery{Match: Match{Kind: MatchGenres, Values: []string{"g1"}}}))
	assert.Empty(t, listIDs(t, repo, ListQuery{Match: Match{Kind: MatchGenres, Values: []string{}}}))
	assert.Equal(t, []string{"1", "2", "3", "4"}, listIDs(t, repo, ListQuery{}))
}

func TestMemoryRepository_List_Sort(t *testing.T) {
	repo := seedCatalogue()

	trending := sortKeys(SortByTrending)
	assert.Equal(t, []string{"3", "2", "1", "4"}, listIDs(t, repo, ListQuery{Sort: trending}))
	assert.Equal(t, []string{"4", "3", "2", "1"}, listIDs(t, repo, ListQuery{Sort: sortKeys(SortByNew)}))
	assert.Equal(t, "3", listIDs(t, repo, ListQuery{Sort: sortKeys(SortByUpdatedToday)})[0])
	assert.Equal(t, []string{"3", "2"}, listIDs(t, repo, ListQuery{Sort: trending, Limit: 2}))
}

func TestMemoryRepository_ListPage(t *testing.T) {
	repo := seedCatalogue()

	summaries, total, err := repo.ListPage(context.Background(), pagination.Params{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, "1", summaries[0].ID)
}

func TestMemoryRepository_UniqueTitle(t *testing.T) {
	ctx := context.Background()
	repo := seedCatalogue()

	err := repo.Create(ctx, &Content{ID: "5", Title: "One"})
	assert.ErrorIs(t, err, dberr.ErrDuplicate)

	err = repo.Update(ctx, &Content{ID: "2", Title: "One"})
	assert.ErrorIs(t, err, dberr.ErrDuplicate)
}

func TestMongoTranslation(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "status", Value: "Ongoing"}},
		mongoFilter(Match{Kind: MatchStatus, Values: []string{"Ongoing"}}),
	)
	assert.Equal(t,
		bson.D{{Key: "tags", Value: bson.D{{Key: "$in", Value: []string{"FreeRead"}}}}},
		mongoFilter(Match{Kind: MatchTags, Values: []string{"FreeRead"}}),
	)
	assert.Equal(t,
		bson.D{{Key: "genres", Value: bson.D{{Key: "$in", Value: []string{}}}}},
		mongoFilter(Match{Kind: MatchGenres}),
	)
	assert.Equal(t, bson.D{}, mongoFilter(Match{Kind: MatchAll}))

	assert.Equal(t,
		bson.D{{Key: "rating", Value: -1}, {Key: "noOfViews", Value: -1}, {Key: "noOfSubscribers", Value: -1}},
		mongoSort(sortKeys(SortByTrending)),
	)
	assert.Equal(t, bson.D{}, mongoSort(nil))
}

func TestPostgresTranslation(t *testing.T) {
	columns := "SELECT " + summaryColumns + " FROM catalog.content"

	tests := []struct {
		name     string
		query    ListQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "status",
			query:    ListQuery{Match: Match{Kind: MatchStatus, Values: []string{"Ongoing"}}, Limit: 18},
			wantSQL:  columns + " WHERE status = $1 LIMIT $2",
			wantArgs: []any{"Ongoing", 18},
		},
		{
			name:     "tags_trending",
			query:    ListQuery{Match: Match{Kind: MatchTags, Values: []string{"FreeRead"}}, Sort: sortKeys(SortByTrending), Limit: 5},
			wantSQL:  columns + " WHERE tags && $1 ORDER BY rating DESC NULLS LAST, noofviews DESC NULLS LAST, noofsubscribers DESC NULLS LAST LIMIT $2",
			wantArgs: []any{[]string{"FreeRead"}, 5},
		},
		{
			name:     "genres",
			query:    ListQuery{Match: Match{Kind: MatchGenres, Values: []string{"g1"}}, Sort: sortKeys(SortByUpdatedToday)},
			wantSQL:  columns + " WHERE genreids && $1 ORDER BY chaptersupdatedon DESC NULLS LAST",
			wantArgs: []any{[]string{"g1"}},
		},
		{
			name:    "all",
			query:   ListQuery{},
			wantSQL: columns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := postgresListSQL(tt.query)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
