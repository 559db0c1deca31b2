package handlers

import (
	"strings"
)

var allowedExperienceLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
	"elite":        {},
}

var allowedAgeGroups = map[string]struct{}{
	"under_30": {},
	"30_45":    {},
	"45_60":    {},
	"over_60":  {},
}

func validateAthleteOnboardingRequest(req athleteOnboardingRequest) string {
	if strings.TrimSpace(req.FullName) == "" {
		return "full_name is required"
	}
	if req.Age <= 0 {
		return "age must be greater than 0"
	}
	if strings.TrimSpace(req.Sport) == "" {
		return "sport is required"
	}
	if err := validateExperienceLevel(req.ExperienceLevel); err != "" {
		return err
	}
	if len(req.Goals) == 0 {
		return "goals must contain at least one item"
	}
	for _, goal := range req.Goals {
		if strings.TrimSpace(goal) == "" {
			return "goals must not contain empty values"
		}
	}
	if req.WeeklyTrainingDays < 1 || req.WeeklyTrainingDays > 7 {
		return "weekly_training_days must be between 1 and 7"
	}
	if req.TotalWeeks <= 0 {
		return "total_weeks must be greater than 0"
	}
	return ""
}

func validateCoachOnboardingRequest(req coachOnboardingRequest) string {
	if strings.TrimSpace(req.FullName) == "" {
		return "full_name is required"
	}
	if strings.TrimSpace(req.Bio) == "" {
		return "bio is required"
	}
	if strings.TrimSpace(req.Specialty) == "" {
		return "specialty is required"
	}
	if strings.TrimSpace(req.TeamName) == "" {
		return "team_name is required"
	}
	return ""
}

func validateHealthOnboardingRequest(req healthOnboardingRequest) string {
	if strings.TrimSpace(req.FullName) == "" {
		return "full_name is required"
	}
	if err := validateAgeGroup(req.AgeGroup); err != "" {
		return err
	}
	if strings.TrimSpace(req.PrimaryGoal) == "" {
		return "primary_goal is required"
	}
	if len(req.PainAreas) == 0 {
		return "pain_areas must contain at least one item"
	}
	for _, area := range req.PainAreas {
		if strings.TrimSpace(area) == "" {
			return "pain_areas must not contain empty values"
		}
	}
	if req.PainLevel < 0 || req.PainLevel > 10 {
		return "pain_level must be between 0 and 10"
	}
	return ""
}

func validateCheckInRequest(req checkInRequest) string {
	if req.Soreness < 0 || req.Soreness > 10 {
		return "soreness must be between 0 and 10"
	}
	if req.HRV != nil && (*req.HRV < 0 || *req.HRV > 200) {
		return "hrv must be between 0 and 200"
	}
	if req.Sleep != nil {
		if req.Sleep.Hours < 0 || req.Sleep.Hours > 24 {
			return "sleep hours must be between 0 and 24"
		}
		if req.Sleep.Quality < 0 || req.Sleep.Quality > 100 {
			return "sleep quality must be between 0 and 100"
		}
		if req.Sleep.DeepSleepPercent < 0 || req.Sleep.DeepSleepPercent > 100 {
			return "deep_sleep_percent must be between 0 and 100"
		}
		if req.Sleep.Interruptions < 0 {
			return "interruptions must be 0 or greater"
		}
	}
	return ""
}

func validateExperienceLevel(level string) string {
	if _, ok := allowedExperienceLevels[strings.TrimSpace(level)]; !ok {
		return "experience_level must be one of: beginner, intermediate, advanced, elite"
	}
	return ""
}

func validateAgeGroup(group string) string {
	if _, ok := allowedAgeGroups[strings.TrimSpace(group)]; !ok {
		return "age_group must be one of: under_30, 30_45, 45_60, over_60"
	}
	return ""
}
