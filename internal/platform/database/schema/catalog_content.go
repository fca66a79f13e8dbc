package schema

// CatalogContentTable represents the 'catalog.content' table
type CatalogContentTable struct {
	Table             string
	ID                string
	Title             string
	Slug              string
	Tags              string
	Status            string
	GenreIDs          string
	Rating            string
	NoOfViews         string
	NoOfSubscribers   string
	Author            string
	Synonyms          string
	Description       string
	Thumbnail         string
	Poster            string
	Images            string
	ChaptersUpdatedOn string
	CreatedAt         string
	UpdatedAt         string
}

// CatalogContent is the schema definition for catalog.content
var CatalogContent = CatalogContentTable{
	Table:             "catalog.content",
	ID:                "id",
	Title:             "title",
	Slug:              "slug",
	Tags:              "tags",
	Status:            "status",
	GenreIDs:          "genreids",
	Rating:            "rating",
	NoOfViews:         "noofviews",
	NoOfSubscribers:   "noofsubscribers",
	Author:            "author",
	Synonyms:          "synonyms",
	Description:       "description",
	Thumbnail:         "thumbnail",
	Poster:            "poster",
	Images:            "images",
	ChaptersUpdatedOn: "chaptersupdatedon",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns lists every column in insert order.
func (t CatalogContentTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Tags, t.Status, t.GenreIDs, t.Rating, t.NoOfViews,
		t.NoOfSubscribers, t.Author, t.Synonyms, t.Description, t.Thumbnail, t.Poster,
		t.Images, t.ChaptersUpdatedOn, t.CreatedAt, t.UpdatedAt,
	}
}

// SummaryColumns lists the columns of the default list projection.
func (t CatalogContentTable) SummaryColumns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Tags, t.Status, t.GenreIDs, t.Rating, t.NoOfViews,
		t.NoOfSubscribers, t.Author, t.Thumbnail, t.ChaptersUpdatedOn, t.CreatedAt, t.UpdatedAt,
	}
}
