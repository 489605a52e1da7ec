// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
)

// Dataset column names.
const (
	ColumnID                  = "id"
	ColumnTitle               = "title"
	ColumnCategoryName        = "category.name"
	ColumnCategoryDescription = "category.description"
	ColumnCommentCount        = "comment_count"
	ColumnUpvoteCount         = "upvote_count"
	ColumnViewCount           = "view_count"
	ColumnShareCount          = "share_count"
	ColumnAverageRating       = "average_rating"
	ColumnVideoLink           = "video_link"
	ColumnUsername            = "username"
)

// RequiredColumns lists the dataset columns the engine needs, excluding
// the summary column whose name is configurable.
var RequiredColumns = []string{
	ColumnID,
	ColumnTitle,
	ColumnCategoryName,
	ColumnCategoryDescription,
	ColumnCommentCount,
	ColumnUpvoteCount,
	ColumnViewCount,
	ColumnShareCount,
	ColumnAverageRating,
	ColumnVideoLink,
	ColumnUsername,
}

// Features is the output of the feature stage.
type Features struct {
	// Items holds one entry per unique id, first occurrence wins.
	Items []Item

	// Interactions holds one (username, id, engagement score) triple per
	// row with a username, duplicates included.
	Interactions []algorithms.Interaction

	// Rows is the number of dataset rows read.
	Rows int

	// DroppedRows counts rows without an id.
	DroppedRows int

	// DuplicateRows counts rows whose id was already seen.
	DuplicateRows int

	// SummaryColumn is the column used for the summary field.
	SummaryColumn string
}

// BuildFeatures derives engagement scores and metadata text for every row
// and deduplicates items by id. It fails with a KindDataFormat error when
// required columns are missing or no row has an id.
func BuildFeatures(table *dataset.Table, cfg FeatureConfig) (*Features, error) {
	const op = "features"

	if table == nil {
		return nil, newError(KindDataFormat, op, ErrEmptyDataset)
	}

	missing := table.MissingColumns(RequiredColumns...)
	summaryCol, ok := table.FirstPresent(cfg.SummaryColumns...)
	if !ok {
		missing = append(missing, strings.Join(cfg.SummaryColumns, "|"))
	}
	if len(missing) > 0 {
		return nil, newError(KindDataFormat, op,
			fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", ")))
	}

	f := &Features{
		Rows:          table.Len(),
		SummaryColumn: summaryCol,
	}
	seen := make(map[string]struct{}, table.Len())

	for r := 0; r < table.Len(); r++ {
		item := buildItem(table, r, summaryCol)
		if item.ID == "" {
			f.DroppedRows++
			continue
		}

		if item.Username != "" {
			f.Interactions = append(f.Interactions, algorithms.Interaction{
				User:   item.Username,
				Item:   item.ID,
				Weight: item.EngagementScore,
			})
		}

		if _, dup := seen[item.ID]; dup {
			f.DuplicateRows++
			continue
		}
		seen[item.ID] = struct{}{}
		f.Items = append(f.Items, item)
	}

	if len(f.Items) == 0 {
		return nil, newError(KindDataFormat, op, ErrEmptyDataset)
	}
	return f, nil
}

func buildItem(table *dataset.Table, r int, summaryCol string) Item {
	item := Item{
		ID:                  normalizeID(table.Value(r, ColumnID)),
		Title:               table.Value(r, ColumnTitle),
		Summary:             table.Value(r, summaryCol),
		CategoryName:        table.Value(r, ColumnCategoryName),
		CategoryDescription: table.Value(r, ColumnCategoryDescription),
		CommentCount:        parseCount(table.Value(r, ColumnCommentCount)),
		UpvoteCount:         parseCount(table.Value(r, ColumnUpvoteCount)),
		ViewCount:           parseCount(table.Value(r, ColumnViewCount)),
		ShareCount:          parseCount(table.Value(r, ColumnShareCount)),
		VideoLink:           table.Value(r, ColumnVideoLink),
		Username:            strings.TrimSpace(table.Value(r, ColumnUsername)),
	}
	item.EngagementScore = item.CommentCount + item.UpvoteCount + item.ViewCount + item.ShareCount
	item.Metadata = strings.Join([]string{item.Title, item.Summary, item.CategoryName, item.CategoryDescription}, " ")
	item.AverageRating, item.HasRating = parseRating(table.Value(r, ColumnAverageRating))
	return item
}

// normalizeID maps float-formatted integer ids ("12.0") to their integer
// form so the same item read through different paths gets one key.
func normalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasSuffix(s, ".0") {
		return s
	}
	if _, err := strconv.ParseInt(strings.TrimSuffix(s, ".0"), 10, 64); err == nil {
		return strings.TrimSuffix(s, ".0")
	}
	return s
}

// parseCount coerces a counter cell: non-numeric, missing, non-finite and
// negative values become 0.
func parseCount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseRating parses an average rating; ok is false when absent or invalid.
func parseRating(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
