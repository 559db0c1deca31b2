// Package metrics holds the pure derivation functions behind the dashboard
// numbers: performance scores, streaks, team aggregation, wellness metrics,
// and trend helpers. Nothing in here touches storage or the clock; functions
// that depend on time take an explicit now argument.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

// Recovery score blend weights. Fixed by product, kept as named constants so
// the blend stays testable against known inputs.
const (
	weightSessionScore  = 0.30
	weightSleepScore    = 0.25
	weightSorenessScore = 0.25
	weightHRVScore      = 0.20
)

const (
	neutralSubScore    = 70
	recentSessionCount = 5
	trailingWeek       = 7 * 24 * time.Hour
)

var intensityMultipliers = map[string]float64{
	models.IntensityLow:      1,
	models.IntensityModerate: 1.5,
	models.IntensityHigh:     2,
	models.IntensityVeryHigh: 2.5,
}

// WeeklyRunningDistance sums the distance of running workouts inside the
// trailing seven-day window ending at now, rounded to one decimal.
func WeeklyRunningDistance(workouts []models.Workout, now time.Time) float64 {
	cutoff := now.Add(-trailingWeek)
	total := 0.0
	for _, workout := range workouts {
		if workout.Type != models.WorkoutRunning {
			continue
		}
		if workout.WorkoutDate.Before(cutoff) || workout.WorkoutDate.After(now) {
			continue
		}
		total += workout.DistanceKM
	}
	return math.Round(total*10) / 10
}

// TrainingLoad scores each workout as duration/10 weighted by intensity and
// returns the unrounded sum. No date filter is applied; the caller picks the
// window. Unknown intensities weigh in at the low multiplier.
func TrainingLoad(workouts []models.Workout) float64 {
	load := 0.0
	for _, workout := range workouts {
		multiplier, ok := intensityMultipliers[workout.Intensity]
		if !ok {
			multiplier = 1
		}
		load += float64(workout.DurationMin) / 10 * multiplier
	}
	return load
}

// RecoveryScore blends session effectiveness with sleep quality, soreness,
// and HRV into a single 0-100 dashboard number. History is sorted
// newest-first internally, so callers may pass it in any order. Missing
// inputs fall back to a neutral 70; soreness is mapped linearly and not
// clamped, so out-of-scale values surface as out-of-scale scores.
func RecoveryScore(history []models.TherapySession, sleep *models.SleepData, hrv *int, soreness int) int {
	sessionScore := float64(neutralSubScore)
	if len(history) > 0 {
		recent := make([]models.TherapySession, len(history))
		copy(recent, history)
		sort.SliceStable(recent, func(i, j int) bool {
			return sessionTime(recent[i]).After(sessionTime(recent[j]))
		})
		if len(recent) > recentSessionCount {
			recent = recent[:recentSessionCount]
		}

		sum := 0.0
		for _, session := range recent {
			if session.Effectiveness != nil {
				sum += float64(*session.Effectiveness)
			}
		}
		sessionScore = sum / float64(len(recent))
	}

	sleepScore := float64(neutralSubScore)
	if sleep != nil {
		sleepScore = float64(sleep.Quality)
	}

	sorenessScore := float64(100 - soreness*10)

	hrvScore := float64(neutralSubScore)
	if hrv != nil {
		hrvScore = float64(*hrv)
	}

	blended := weightSessionScore*sessionScore +
		weightSleepScore*sleepScore +
		weightSorenessScore*sorenessScore +
		weightHRVScore*hrvScore
	return int(math.Round(blended))
}

func sessionTime(session models.TherapySession) time.Time {
	if session.CompletedAt != nil {
		return *session.CompletedAt
	}
	return session.ScheduledAt
}
