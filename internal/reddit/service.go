package reddit

import (
	"context"
	"errors"

	"github.com/jmartel/databridge-mcp/internal/logging"
)

// Field-level truncation limits, in runes.
const (
	selftextLimit    = 500
	commentBodyLimit = 300
	searchTextLimit  = 200
	descriptionLimit = 500
)

// ErrInvalidSort marks a sort mode outside hot/new/top/rising. The operation
// fails before any client call is made.
var ErrInvalidSort = errors.New("invalid sort_type")

var validSorts = map[string]bool{
	"hot":    true,
	"new":    true,
	"top":    true,
	"rising": true,
}

// Service implements the four read operations over an externally owned
// Reddit client. Calls are independent; no pagination state is retained.
type Service struct {
	api API
	log logging.Logger
}

func NewService(api API, log logging.Logger) *Service {
	return &Service{api: api, log: log.WithName("reddit.service")}
}

// SubredditPosts fetches a page of submissions for one community.
func (s *Service) SubredditPosts(ctx context.Context, subreddit, sortType string, limit int, timeFilter string) (PostListing, error) {
	if !validSorts[sortType] {
		return PostListing{}, ErrInvalidSort
	}

	s.log.Debug("fetching subreddit posts", "subreddit", subreddit, "sort", sortType, "limit", limit)
	raw, err := s.api.SubredditListing(ctx, subreddit, sortType, limit, timeFilter)
	if err != nil {
		return PostListing{}, err
	}
	parsed, err := parsePosts(raw)
	if err != nil {
		return PostListing{}, err
	}

	posts := make([]Post, 0, len(parsed))
	for _, pd := range parsed {
		posts = append(posts, Post{
			ID:          pd.ID,
			Title:       pd.Title,
			Author:      authorOf(pd.Author),
			Score:       pd.Score,
			UpvoteRatio: pd.UpvoteRatio,
			NumComments: pd.NumComments,
			CreatedUTC:  pd.CreatedUTC,
			URL:         pd.URL,
			Permalink:   "https://reddit.com" + pd.Permalink,
			Selftext:    truncate(pd.Selftext, selftextLimit),
			IsSelf:      pd.IsSelf,
			Over18:      pd.Over18,
			Spoiler:     pd.Spoiler,
			Stickied:    pd.Stickied,
			FlairText:   pd.LinkFlairText,
		})
	}

	listing := PostListing{
		Subreddit: subreddit,
		SortType:  sortType,
		Count:     len(posts),
		Posts:     posts,
	}
	// The time window only applies to top listings; reported as null otherwise.
	if sortType == "top" {
		tf := timeFilter
		listing.TimeFilter = &tf
	}
	return listing, nil
}

// PostDetails fetches one submission, optionally with its top-level comments.
// Collapsed "load more" placeholders are dropped, never fetched.
func (s *Service) PostDetails(ctx context.Context, postID string, includeComments bool, commentLimit int) (PostDetails, error) {
	s.log.Debug("fetching post details", "post_id", postID, "include_comments", includeComments)
	raw, err := s.api.PostWithComments(ctx, postID, commentLimit)
	if err != nil {
		return PostDetails{}, err
	}
	pd, rawComments, err := parseCommentsPage(raw)
	if err != nil {
		return PostDetails{}, err
	}

	details := PostDetails{
		ID:            pd.ID,
		Title:         pd.Title,
		Author:        authorOf(pd.Author),
		Subreddit:     pd.Subreddit,
		Score:         pd.Score,
		UpvoteRatio:   pd.UpvoteRatio,
		NumComments:   pd.NumComments,
		CreatedUTC:    pd.CreatedUTC,
		URL:           pd.URL,
		Permalink:     "https://reddit.com" + pd.Permalink,
		Selftext:      pd.Selftext,
		IsSelf:        pd.IsSelf,
		Over18:        pd.Over18,
		Spoiler:       pd.Spoiler,
		Stickied:      pd.Stickied,
		FlairText:     pd.LinkFlairText,
		Gilded:        pd.Gilded,
		Distinguished: pd.Distinguished,
	}

	if includeComments {
		comments := make([]Comment, 0, commentLimit)
		for _, cd := range rawComments {
			if len(comments) >= commentLimit {
				break
			}
			comments = append(comments, Comment{
				ID:          cd.ID,
				Author:      authorOf(cd.Author),
				Body:        truncate(cd.Body, commentBodyLimit),
				Score:       cd.Score,
				CreatedUTC:  cd.CreatedUTC,
				IsSubmitter: cd.IsSubmitter,
				Stickied:    cd.Stickied,
				Gilded:      cd.Gilded,
			})
		}
		details.Comments = comments
	}
	return details, nil
}

// Search runs a site-wide full-text search and returns abbreviated records.
func (s *Service) Search(ctx context.Context, query, sort, timeFilter string, limit int) (SearchListing, error) {
	s.log.Debug("searching reddit", "query", query, "sort", sort, "limit", limit)
	raw, err := s.api.Search(ctx, query, sort, timeFilter, limit)
	if err != nil {
		return SearchListing{}, err
	}
	parsed, err := parsePosts(raw)
	if err != nil {
		return SearchListing{}, err
	}

	results := make([]SearchResult, 0, len(parsed))
	for _, pd := range parsed {
		results = append(results, SearchResult{
			ID:          pd.ID,
			Title:       pd.Title,
			Author:      authorOf(pd.Author),
			Subreddit:   pd.Subreddit,
			Score:       pd.Score,
			NumComments: pd.NumComments,
			CreatedUTC:  pd.CreatedUTC,
			URL:         pd.URL,
			Permalink:   "https://reddit.com" + pd.Permalink,
			Selftext:    truncate(pd.Selftext, searchTextLimit),
		})
	}

	return SearchListing{
		Query:      query,
		Sort:       sort,
		TimeFilter: timeFilter,
		Count:      len(results),
		Results:    results,
	}, nil
}

// SubredditInfo fetches community metadata.
func (s *Service) SubredditInfo(ctx context.Context, subreddit string) (Subreddit, error) {
	s.log.Debug("fetching subreddit info", "subreddit", subreddit)
	raw, err := s.api.SubredditAbout(ctx, subreddit)
	if err != nil {
		return Subreddit{}, err
	}
	sd, err := parseAbout(raw)
	if err != nil {
		return Subreddit{}, err
	}

	return Subreddit{
		Name:              sd.DisplayName,
		Title:             sd.Title,
		Description:       truncate(sd.Description, descriptionLimit),
		Subscribers:       sd.Subscribers,
		ActiveUsers:       sd.ActiveUserCount,
		CreatedUTC:        sd.CreatedUTC,
		Over18:            sd.Over18,
		PublicDescription: sd.PublicDescription,
		URL:               "https://reddit.com/r/" + subreddit,
		Type:              sd.SubredditType,
		Lang:              sd.Lang,
	}, nil
}
