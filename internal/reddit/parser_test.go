package reddit

import (
	"encoding/json"
	"testing"
)

const listingFixture = `{
  "kind": "Listing",
  "data": {
    "after": "t3_next",
    "children": [
      {
        "kind": "t3",
        "data": {
          "id": "abc123",
          "title": "First post",
          "author": "alice",
          "subreddit": "golang",
          "score": 42,
          "upvote_ratio": 0.97,
          "num_comments": 7,
          "created_utc": 1700000000.0,
          "url": "https://example.com/article",
          "permalink": "/r/golang/comments/abc123/first_post/",
          "selftext": "hello world",
          "is_self": true,
          "over_18": false,
          "spoiler": false,
          "stickied": true,
          "link_flair_text": "Discussion"
        }
      },
      {
        "kind": "t5",
        "data": {"id": "not-a-post"}
      },
      {
        "kind": "t3",
        "data": {
          "id": "def456",
          "title": "Second post",
          "author": "",
          "score": 1,
          "created_utc": 1700000100.0,
          "permalink": "/r/golang/comments/def456/second_post/",
          "link_flair_text": null
        }
      }
    ]
  }
}`

const commentsPageFixture = `[
  {
    "kind": "Listing",
    "data": {
      "children": [
        {
          "kind": "t3",
          "data": {
            "id": "abc123",
            "title": "First post",
            "author": "alice",
            "subreddit": "golang",
            "score": 42,
            "num_comments": 3,
            "created_utc": 1700000000.0,
            "permalink": "/r/golang/comments/abc123/first_post/",
            "selftext": "body text",
            "gilded": 1,
            "distinguished": "moderator"
          }
        }
      ]
    }
  },
  {
    "kind": "Listing",
    "data": {
      "children": [
        {
          "kind": "t1",
          "data": {
            "id": "c1",
            "author": "bob",
            "body": "nice post",
            "score": 5,
            "created_utc": 1700000200.0,
            "is_submitter": false,
            "stickied": false,
            "gilded": 0
          }
        },
        {
          "kind": "more",
          "data": {"count": 12, "children": ["c9", "c10"]}
        },
        {
          "kind": "t1",
          "data": {
            "id": "c2",
            "author": "",
            "body": "removed account reply",
            "score": 1,
            "created_utc": 1700000300.0,
            "is_submitter": true,
            "stickied": false,
            "gilded": 2
          }
        }
      ]
    }
  }
]`

func TestParsePosts(t *testing.T) {
	posts, err := parsePosts(json.RawMessage(listingFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	first := posts[0]
	if first.ID != "abc123" || first.Author != "alice" || first.Score != 42 {
		t.Fatalf("unexpected first post: %+v", first)
	}
	if first.UpvoteRatio != 0.97 || !first.Stickied || !first.IsSelf {
		t.Fatalf("unexpected first post flags: %+v", first)
	}
	if first.LinkFlairText == nil || *first.LinkFlairText != "Discussion" {
		t.Fatalf("expected flair text, got %v", first.LinkFlairText)
	}
	second := posts[1]
	if second.Author != "" {
		t.Fatalf("expected absent author, got %q", second.Author)
	}
	if second.LinkFlairText != nil {
		t.Fatalf("expected nil flair for null value")
	}
}

func TestParseCommentsPage(t *testing.T) {
	post, comments, err := parseCommentsPage(json.RawMessage(commentsPageFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != "abc123" || post.Gilded != 1 {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Distinguished == nil || *post.Distinguished != "moderator" {
		t.Fatalf("expected distinguished moderator, got %v", post.Distinguished)
	}
	// "more" placeholders are flattened away, never fetched.
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].ID != "c1" || comments[1].ID != "c2" {
		t.Fatalf("unexpected comment ids: %+v", comments)
	}
	if !comments[1].IsSubmitter || comments[1].Gilded != 2 {
		t.Fatalf("unexpected comment fields: %+v", comments[1])
	}
}

func TestParseCommentsPage_PostMissing(t *testing.T) {
	page := `[{"kind": "Listing", "data": {"children": []}}]`
	if _, _, err := parseCommentsPage(json.RawMessage(page)); err == nil {
		t.Fatalf("expected error for missing post")
	}
}

func TestParseAbout(t *testing.T) {
	about := `{
  "kind": "t5",
  "data": {
    "display_name": "golang",
    "title": "The Go Programming Language",
    "description": "long sidebar text",
    "subscribers": 250000,
    "active_user_count": 812,
    "created_utc": 1259000000.0,
    "over18": false,
    "public_description": "Ask questions about Go.",
    "subreddit_type": "public",
    "lang": "en"
  }
}`
	sd, err := parseAbout(json.RawMessage(about))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sd.DisplayName != "golang" || sd.Subscribers != 250000 || sd.ActiveUserCount != 812 {
		t.Fatalf("unexpected subreddit data: %+v", sd)
	}
	if sd.SubredditType != "public" || sd.Lang != "en" {
		t.Fatalf("unexpected type/lang: %+v", sd)
	}
}
