package workouts

import (
	"context"
	"math"
	"sort"
)

// Stats aggregates the whole workout log the same way the dashboard
// renders it: global totals/averages/maxima, per-title breakdown and
// category distribution.
type Stats struct {
	TotalWorkouts     int            `json:"totalWorkouts"`
	TotalVolume       float64        `json:"totalVolume"`
	TotalLoad         float64        `json:"totalLoad"`
	TotalReps         int            `json:"totalReps"`
	AvgLoad           float64        `json:"avgLoad"`
	AvgReps           float64        `json:"avgReps"`
	MaxLoad           float64        `json:"maxLoad"`
	MaxReps           int            `json:"maxReps"`
	MostFrequentTitle string         `json:"mostFrequentTitle"`
	TitleStats        []TitleStats   `json:"titleStats"`
	CategoryCounts    map[string]int `json:"categoryCounts"`
}

type TitleStats struct {
	Title     string  `json:"title"`
	Count     int     `json:"count"`
	TotalLoad float64 `json:"totalLoad"`
	TotalReps int     `json:"totalReps"`
	AvgLoad   float64 `json:"avgLoad"`
	AvgReps   float64 `json:"avgReps"`
	MaxLoad   float64 `json:"maxLoad"`
	MaxReps   int     `json:"maxReps"`
}

type Analyzer struct {
	repo workoutsRepo
}

func NewAnalyzer(repo workoutsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) Stats(ctx context.Context) (*Stats, error) {
	workouts, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalWorkouts:  len(workouts),
		TitleStats:     make([]TitleStats, 0),
		CategoryCounts: make(map[string]int),
	}
	if len(workouts) == 0 {
		return stats, nil
	}

	perTitle := make(map[string]*TitleStats)
	var titleOrder []string

	for _, w := range workouts {
		load := 0.0
		if w.Load != nil {
			load = *w.Load
		}

		stats.TotalVolume += load * float64(w.Reps) * float64(w.Sets)
		stats.TotalLoad += load
		stats.TotalReps += w.Reps
		stats.MaxLoad = math.Max(stats.MaxLoad, load)
		if w.Reps > stats.MaxReps {
			stats.MaxReps = w.Reps
		}
		stats.CategoryCounts[w.Category]++

		ts, ok := perTitle[w.Title]
		if !ok {
			ts = &TitleStats{Title: w.Title}
			perTitle[w.Title] = ts
			titleOrder = append(titleOrder, w.Title)
		}
		ts.Count++
		ts.TotalLoad += load
		ts.TotalReps += w.Reps
		ts.MaxLoad = math.Max(ts.MaxLoad, load)
		if w.Reps > ts.MaxReps {
			ts.MaxReps = w.Reps
		}
	}

	stats.AvgLoad = roundTo1(stats.TotalLoad / float64(len(workouts)))
	stats.AvgReps = roundTo1(float64(stats.TotalReps) / float64(len(workouts)))

	for _, title := range titleOrder {
		ts := perTitle[title]
		ts.AvgLoad = roundTo1(ts.TotalLoad / float64(ts.Count))
		ts.AvgReps = roundTo1(float64(ts.TotalReps) / float64(ts.Count))
		stats.TitleStats = append(stats.TitleStats, *ts)
	}

	// most logged exercises first, ties by title for a stable order
	sort.SliceStable(stats.TitleStats, func(i, j int) bool {
		if stats.TitleStats[i].Count != stats.TitleStats[j].Count {
			return stats.TitleStats[i].Count > stats.TitleStats[j].Count
		}
		return stats.TitleStats[i].Title < stats.TitleStats[j].Title
	})
	stats.MostFrequentTitle = stats.TitleStats[0].Title

	return stats, nil
}

func roundTo1(f float64) float64 {
	return math.Round(f*10) / 10
}
