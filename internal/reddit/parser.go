package reddit

import (
	"encoding/json"
	"fmt"
)

// Listing children carry a kind discriminator: t3 submissions, t1 comments,
// and "more" placeholders for collapsed comment subtrees.
const (
	kindSubmission = "t3"
	kindComment    = "t1"
)

type listingEnvelope struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Subreddit     string  `json:"subreddit"`
	Score         int     `json:"score"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	NumComments   int     `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	URL           string  `json:"url"`
	Permalink     string  `json:"permalink"`
	Selftext      string  `json:"selftext"`
	IsSelf        bool    `json:"is_self"`
	Over18        bool    `json:"over_18"`
	Spoiler       bool    `json:"spoiler"`
	Stickied      bool    `json:"stickied"`
	LinkFlairText *string `json:"link_flair_text"`
	Gilded        int     `json:"gilded"`
	Distinguished *string `json:"distinguished"`
}

type commentData struct {
	ID          string  `json:"id"`
	Author      string  `json:"author"`
	Body        string  `json:"body"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	IsSubmitter bool    `json:"is_submitter"`
	Stickied    bool    `json:"stickied"`
	Gilded      int     `json:"gilded"`
}

type subredditData struct {
	DisplayName       string  `json:"display_name"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Subscribers       int     `json:"subscribers"`
	ActiveUserCount   int     `json:"active_user_count"`
	CreatedUTC        float64 `json:"created_utc"`
	Over18            bool    `json:"over18"`
	PublicDescription string  `json:"public_description"`
	SubredditType     string  `json:"subreddit_type"`
	Lang              string  `json:"lang"`
}

// parsePosts decodes a listing page into submission records, skipping any
// non-t3 children.
func parsePosts(data json.RawMessage) ([]postData, error) {
	var listing listingEnvelope
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("parse listing JSON: %w", err)
	}

	var posts []postData
	for _, child := range listing.Data.Children {
		if child.Kind != kindSubmission {
			continue
		}
		var pd postData
		if err := json.Unmarshal(child.Data, &pd); err != nil {
			return nil, fmt.Errorf("parse submission: %w", err)
		}
		posts = append(posts, pd)
	}
	return posts, nil
}

// parseCommentsPage decodes the two-element [post listing, comment listing]
// document returned by /comments/{id}.json. Top-level "more" placeholders are
// flattened away without fetching them.
func parseCommentsPage(data json.RawMessage) (postData, []commentData, error) {
	var pages []json.RawMessage
	if err := json.Unmarshal(data, &pages); err != nil {
		return postData{}, nil, fmt.Errorf("parse comments page JSON: %w", err)
	}
	if len(pages) < 1 {
		return postData{}, nil, fmt.Errorf("empty comments page")
	}

	posts, err := parsePosts(pages[0])
	if err != nil {
		return postData{}, nil, err
	}
	if len(posts) == 0 {
		return postData{}, nil, fmt.Errorf("post not found")
	}

	var comments []commentData
	if len(pages) > 1 {
		var listing listingEnvelope
		if err := json.Unmarshal(pages[1], &listing); err != nil {
			return postData{}, nil, fmt.Errorf("parse comment listing JSON: %w", err)
		}
		for _, child := range listing.Data.Children {
			if child.Kind != kindComment {
				continue
			}
			var cd commentData
			if err := json.Unmarshal(child.Data, &cd); err != nil {
				return postData{}, nil, fmt.Errorf("parse comment: %w", err)
			}
			comments = append(comments, cd)
		}
	}
	return posts[0], comments, nil
}

func parseAbout(data json.RawMessage) (subredditData, error) {
	var about struct {
		Data subredditData `json:"data"`
	}
	if err := json.Unmarshal(data, &about); err != nil {
		return subredditData{}, fmt.Errorf("parse subreddit about JSON: %w", err)
	}
	return about.Data, nil
}
