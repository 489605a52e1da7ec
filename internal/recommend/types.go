// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

// Item is a content entry after the feature stage. Items are immutable.
type Item struct {
	ID                  string
	Title               string
	Summary             string
	CategoryName        string
	CategoryDescription string

	CommentCount float64
	UpvoteCount  float64
	ViewCount    float64
	ShareCount   float64

	// EngagementScore is the sum of the four counters.
	EngagementScore float64

	// Metadata is title, summary, category name and category description
	// joined by single spaces.
	Metadata string

	// AverageRating is valid only when HasRating is true.
	AverageRating float64
	HasRating     bool

	VideoLink string

	// Username is the user context of the row the item was taken from.
	Username string
}

// rating returns the average rating as a pointer, nil when absent.
func (it *Item) rating() *float64 {
	if !it.HasRating {
		return nil
	}
	r := it.AverageRating
	return &r
}

// CollaborativeRecord is the projection returned for known users.
type CollaborativeRecord struct {
	Username        string  `json:"username"`
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	VideoLink       string  `json:"video_link"`
	EngagementScore float64 `json:"engagement_score"`
}

// ColdStartRecord is the projection returned for new users.
type ColdStartRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	CategoryName  string   `json:"category.name"`
	VideoLink     string   `json:"video_link"`
	ViewCount     float64  `json:"view_count"`
	AverageRating *float64 `json:"average_rating"`
	CommentCount  float64  `json:"comment_count"`
}

//nolint:gocritic // rangeValCopy is acceptable for projections
func collaborativeRecord(it Item) CollaborativeRecord {
	return CollaborativeRecord{
		Username:        it.Username,
		ID:              it.ID,
		Title:           it.Title,
		VideoLink:       it.VideoLink,
		EngagementScore: it.EngagementScore,
	}
}

//nolint:gocritic // rangeValCopy is acceptable for projections
func coldStartRecord(it Item) ColdStartRecord {
	return ColdStartRecord{
		ID:            it.ID,
		Title:         it.Title,
		CategoryName:  it.CategoryName,
		VideoLink:     it.VideoLink,
		ViewCount:     it.ViewCount,
		AverageRating: it.rating(),
		CommentCount:  it.CommentCount,
	}
}
