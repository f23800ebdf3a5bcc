package workouts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/fitstack/workouts/internal/workouts"
)

func testWorkout(title, category string, reps, sets int, load float64) workouts.Workout {
	w := workouts.Workout{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Reps:          reps,
		Sets:          sets,
		Category:      category,
		Notes:         gofakeit.Sentence(4),
		DatePerformed: gofakeit.DateRange(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		),
	}
	if load > 0 {
		w.Load = &load
	}
	return w
}

func TestAnalyzer_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockworkoutsRepo(ctrl)
	analyzer := workouts.NewAnalyzer(repoMock)

	repoMock.EXPECT().
		List(gomock.Any()).
		Return([]workouts.Workout{
			testWorkout("Bench Press", workouts.CategoryStrength, 10, 3, 60),
			testWorkout("Bench Press", workouts.CategoryStrength, 8, 3, 70),
			testWorkout("Deadlift", workouts.CategoryStrength, 5, 5, 120),
			testWorkout("Plank", workouts.CategoryCore, 1, 3, 0),
		}, nil)

	stats, err := analyzer.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalWorkouts)
	// 60*10*3 + 70*8*3 + 120*5*5 + 0
	assert.Equal(t, float64(1800+1680+3000), stats.TotalVolume)
	assert.Equal(t, float64(250), stats.TotalLoad)
	assert.Equal(t, 24, stats.TotalReps)
	assert.Equal(t, 62.5, stats.AvgLoad)
	assert.Equal(t, 6.0, stats.AvgReps)
	assert.Equal(t, float64(120), stats.MaxLoad)
	assert.Equal(t, 10, stats.MaxReps)
	assert.Equal(t, "Bench Press", stats.MostFrequentTitle)
	assert.Equal(t, map[string]int{
		workouts.CategoryStrength: 3,
		workouts.CategoryCore:     1,
	}, stats.CategoryCounts)

	require.Len(t, stats.TitleStats, 3)
	benchPress := stats.TitleStats[0]
	assert.Equal(t, "Bench Press", benchPress.Title)
	assert.Equal(t, 2, benchPress.Count)
	assert.Equal(t, float64(130), benchPress.TotalLoad)
	assert.Equal(t, 18, benchPress.TotalReps)
	assert.Equal(t, float64(65), benchPress.AvgLoad)
	assert.Equal(t, 9.0, benchPress.AvgReps)
	assert.Equal(t, float64(70), benchPress.MaxLoad)
	assert.Equal(t, 10, benchPress.MaxReps)

	// equal counts fall back to alphabetical order
	assert.Equal(t, "Deadlift", stats.TitleStats[1].Title)
	assert.Equal(t, "Plank", stats.TitleStats[2].Title)
}

func TestAnalyzer_Stats_empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockworkoutsRepo(ctrl)
	analyzer := workouts.NewAnalyzer(repoMock)

	repoMock.EXPECT().
		List(gomock.Any()).
		Return([]workouts.Workout{}, nil)

	stats, err := analyzer.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalWorkouts)
	assert.Empty(t, stats.MostFrequentTitle)
	assert.Empty(t, stats.TitleStats)
	assert.Empty(t, stats.CategoryCounts)
}

func TestAnalyzer_Stats_repoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockworkoutsRepo(ctrl)
	analyzer := workouts.NewAnalyzer(repoMock)

	repoMock.EXPECT().
		List(gomock.Any()).
		Return(nil, errors.New("connection reset"))

	stats, err := analyzer.Stats(context.Background())
	assert.Nil(t, stats)
	require.ErrorContains(t, err, "connection reset")
}
