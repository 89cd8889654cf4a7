package reddit

import "encoding/json"

// deletedAuthor is the sentinel Reddit shows for removed accounts. It is
// emitted only at the JSON boundary; internally absence is explicit.
const deletedAuthor = "[deleted]"

// Author carries a possibly-absent account name. Deleted or suspended
// accounts come back from the API with an empty author field.
type Author struct {
	Name    string
	Deleted bool
}

func authorOf(name string) Author {
	if name == "" {
		return Author{Deleted: true}
	}
	return Author{Name: name}
}

func (a Author) MarshalJSON() ([]byte, error) {
	if a.Deleted {
		return json.Marshal(deletedAuthor)
	}
	return json.Marshal(a.Name)
}

// Post is the listing-level view of a submission.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      Author  `json:"author"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Selftext    string  `json:"selftext"`
	IsSelf      bool    `json:"is_self"`
	Over18      bool    `json:"over_18"`
	Spoiler     bool    `json:"spoiler"`
	Stickied    bool    `json:"stickied"`
	FlairText   *string `json:"flair_text"`
}

// PostDetails is the single-submission view, optionally with top-level
// comments attached.
type PostDetails struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        Author    `json:"author"`
	Subreddit     string    `json:"subreddit"`
	Score         int       `json:"score"`
	UpvoteRatio   float64   `json:"upvote_ratio"`
	NumComments   int       `json:"num_comments"`
	CreatedUTC    float64   `json:"created_utc"`
	URL           string    `json:"url"`
	Permalink     string    `json:"permalink"`
	Selftext      string    `json:"selftext"`
	IsSelf        bool      `json:"is_self"`
	Over18        bool      `json:"over_18"`
	Spoiler       bool      `json:"spoiler"`
	Stickied      bool      `json:"stickied"`
	FlairText     *string   `json:"flair_text"`
	Gilded        int       `json:"gilded"`
	Distinguished *string   `json:"distinguished"`
	Comments      []Comment `json:"comments,omitempty"`
}

// Comment is a shaped top-level comment.
type Comment struct {
	ID          string  `json:"id"`
	Author      Author  `json:"author"`
	Body        string  `json:"body"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	IsSubmitter bool    `json:"is_submitter"`
	Stickied    bool    `json:"stickied"`
	Gilded      int     `json:"gilded"`
}

// SearchResult is the abbreviated post view returned by site-wide search.
type SearchResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      Author  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Selftext    string  `json:"selftext"`
}

// Subreddit describes a community.
type Subreddit struct {
	Name              string  `json:"name"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Subscribers       int     `json:"subscribers"`
	ActiveUsers       int     `json:"active_users"`
	CreatedUTC        float64 `json:"created_utc"`
	Over18            bool    `json:"over18"`
	PublicDescription string  `json:"public_description"`
	URL               string  `json:"url"`
	Type              string  `json:"subreddit_type"`
	Lang              string  `json:"lang"`
}

// PostListing is the envelope for subreddit listings.
type PostListing struct {
	Subreddit  string  `json:"subreddit"`
	SortType   string  `json:"sort_type"`
	TimeFilter *string `json:"time_filter"`
	Count      int     `json:"count"`
	Posts      []Post  `json:"posts"`
}

// SearchListing is the envelope for site-wide search results.
type SearchListing struct {
	Query      string         `json:"query"`
	Sort       string         `json:"sort"`
	TimeFilter string         `json:"time_filter"`
	Count      int            `json:"count"`
	Results    []SearchResult `json:"results"`
}

// truncate caps free text at limit runes, appending a literal ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
