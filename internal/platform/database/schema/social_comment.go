package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table      string
	ID         string
	ParentID   string
	RootID     string
	Message    string
	ContentID  string
	ChapterID  string
	UserID     string
	Username   string
	Avatar     string
	UpVotes    string
	DownVotes  string
	IsEdited   string
	IsReported string
	IsDeleted  string
	CreatedAt  string
	UpdatedAt  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:      "social.comment",
	ID:         "id",
	ParentID:   "parentid",
	RootID:     "rootid",
	Message:    "message",
	ContentID:  "contentid",
	ChapterID:  "chapterid",
	UserID:     "userid",
	Username:   "username",
	Avatar:     "avatar",
	UpVotes:    "upvotes",
	DownVotes:  "downvotes",
	IsEdited:   "isedited",
	IsReported: "isreported",
	IsDeleted:  "isdeleted",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{
		t.ID, t.ParentID, t.RootID, t.Message, t.ContentID, t.ChapterID, t.UserID, t.Username, t.Avatar,
		t.UpVotes, t.DownVotes, t.IsEdited, t.IsReported, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	}
}
