// Package model defines the data structures used in the newshub application:
// the canonical Article stored in the database, the provider-agnostic RawArticle
// every ingestion path decodes into, user bookmarks and recent searches.
package model

import "time"

// Category is the fixed classification enum. Every stored article carries
// exactly one of these values; CategoryBusiness is the fallback.
type Category string

const (
	CategoryBusiness      Category = "business"
	CategoryTechnology    Category = "technology"
	CategoryPolitics      Category = "politics"
	CategorySports        Category = "sports"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"
)

// Categories lists all valid categories in matching-priority order.
var Categories = []Category{
	CategoryBusiness,
	CategoryTechnology,
	CategoryPolitics,
	CategorySports,
	CategoryHealth,
	CategoryEntertainment,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ProviderKind identifies which upstream a raw article came from. The kind
// selects the ID derivation scheme and is recorded for provenance.
type ProviderKind string

const (
	KindNewsAPI  ProviderKind = "newsapi"
	KindSearch   ProviderKind = "search"
	KindTrending ProviderKind = "trending"
	KindHeadline ProviderKind = "headline"
	KindRSS      ProviderKind = "rss"
)

// Defaults applied when a provider omits a field.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown Author"
	DefaultSource   = "Unknown Source"
	DefaultImageURL = "https://images.pexels.com/photos/518543/pexels-photo-518543.jpeg?auto=compress&cs=tinysrgb&w=800"
	DefaultReadTime = 5
)

// RawArticle is the intermediate shape every provider client maps its
// response into. Field mapping (urlToImage vs thumbnail vs images.thumbnail
// and so on) happens in the provider decode; everything downstream of it is
// provider-independent.
type RawArticle struct {
	Kind          ProviderKind
	Title         string
	Description   string
	Content       string
	Authors       []string
	SourceName    string
	PublishedAt   time.Time
	ImageURL      string
	Link          string
	CategoryHints []string
}

// Article is the canonical persisted record. Rows are created only by
// ingestion and never updated in place; the cleanup job is the only
// deletion path for external articles.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"imageUrl"`
	Category    Category  `json:"category"`
	ReadTime    int       `json:"readTime"`
	URL         string    `json:"url,omitempty"`
	External    bool      `json:"isExternal"`
	// SearchedAt / FetchedAt record ingestion provenance: set for articles
	// that arrived via a user search or a trending/headline refresh.
	SearchedAt *time.Time `json:"searchedAt,omitempty"`
	FetchedAt  *time.Time `json:"fetchedAt,omitempty"`
	// IsBookmarked is computed at read time against the session user's
	// bookmark set, never stored.
	IsBookmarked bool `json:"isBookmarked"`
}

// Bookmark associates a user with an article. The (UserID, ArticleID) pair
// is unique and owned exclusively by the user who created it.
type Bookmark struct {
	UserID    string    `json:"userId"`
	ArticleID string    `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentSearch is one entry of the capped recent-search list.
type RecentSearch struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []string  `json:"sources"`
}
