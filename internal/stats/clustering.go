// Package stats implements the tag frequency clustering used by the tag
// list view: tags are split into a "most frequent" and a "less frequent"
// band based on how much of the current book each tag covers.
package stats

import (
	"math"
	"sort"
)

const (
	// DefaultMaxClusters caps how many distinct percentage values count as
	// "most frequent".
	DefaultMaxClusters = 6
	// DefaultMinPercent is the minimum book coverage for the most-frequent
	// band.
	DefaultMinPercent = 3
)

// TagFrequency is one tag's book-scoped usage, as fed to the clusterer.
type TagFrequency struct {
	TagID   uint   `json:"tag_id"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Bands is the clusterer output: two ordered bands, each sorted by
// descending count.
type Bands struct {
	MostFrequent []TagFrequency `json:"most_frequent"`
	LessFrequent []TagFrequency `json:"less_frequent"`
}

// Clusterer buckets tag coverage percentages. The zero value is not
// usable; construct with NewClusterer.
type Clusterer struct {
	maxClusters int
	minPercent  int
}

// NewClusterer builds a clusterer. Non-positive arguments fall back to
// the defaults.
func NewClusterer(maxClusters, minPercent int) *Clusterer {
	if maxClusters <= 0 {
		maxClusters = DefaultMaxClusters
	}
	if minPercent <= 0 {
		minPercent = DefaultMinPercent
	}
	return &Clusterer{maxClusters: maxClusters, minPercent: minPercent}
}

// Percent converts an assignment count into a whole-number percentage of
// the book's verse total.
func Percent(count, totalVerses int) int {
	if totalVerses <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(totalVerses)))
}

// Cluster splits the tags into two bands. The highest distinct percentage
// values, capped at the cluster limit, form the candidate set; a tag is
// most frequent when its percentage is in that set and at least the
// minimum threshold. A lone candidate value equal to the threshold lowers
// the threshold by one; note this cannot move any tag between bands,
// since the lone value already meets the unlowered threshold and nothing
// below it is in the candidate set. Both bands are sorted by descending
// count, title as tie-break.
func (c *Clusterer) Cluster(tags []TagFrequency) Bands {
	clustered := c.clusterValues(tags)

	threshold := c.minPercent
	if len(clustered) == 1 && clustered[0] == threshold {
		// Inert: the lone clustered value already passes the unlowered
		// threshold, and nothing below it is clustered. See the doc
		// comment.
		threshold--
	}

	var bands Bands
	for _, t := range tags {
		if t.Percent >= threshold && containsValue(clustered, t.Percent) {
			bands.MostFrequent = append(bands.MostFrequent, t)
		} else {
			bands.LessFrequent = append(bands.LessFrequent, t)
		}
	}
	sortBand(bands.MostFrequent)
	sortBand(bands.LessFrequent)
	return bands
}

// clusterValues returns the up-to-maxClusters highest distinct percentage
// values, descending.
func (c *Clusterer) clusterValues(tags []TagFrequency) []int {
	seen := make(map[int]bool, len(tags))
	var values []int
	for _, t := range tags {
		if !seen[t.Percent] {
			seen[t.Percent] = true
			values = append(values, t.Percent)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	if len(values) > c.maxClusters {
		values = values[:c.maxClusters]
	}
	return values
}

func containsValue(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func sortBand(band []TagFrequency) {
	sort.Slice(band, func(i, j int) bool {
		if band[i].Count != band[j].Count {
			return band[i].Count > band[j].Count
		}
		return band[i].Title < band[j].Title
	})
}
