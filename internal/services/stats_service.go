package services

import (
	"context"
	"promptbuilder-backend/internal/models"
	"sort"
	"time"

	"gorm.io/gorm"
)

const (
	dashboardListSize = 5
	usageWindow       = 30 * 24 * time.Hour
	trendingWindow    = 7 * 24 * time.Hour
)

type StatsOverview struct {
	TotalCategories int64 `json:"total_categories"`
	TotalPrompts    int64 `json:"total_prompts"`
	TotalUsage      int64 `json:"total_usage"`
}

type CategoryBreakdown struct {
	CategoryName string `json:"category_name"`
	PromptCount  int64  `json:"prompt_count"`
	TotalUsage   int64  `json:"total_usage"`
}

type Dashboard struct {
	Overview          StatsOverview       `json:"overview"`
	RecentPrompts     []models.Prompt     `json:"recent_prompts"`
	MostUsedPrompts   []models.Prompt     `json:"most_used_prompts"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
}

type DailyUsage struct {
	Date  string `json:"date"`
	Usage int64  `json:"usage"`
}

type CategoryUsage struct {
	CategoryName string  `json:"category_name"`
	TotalUsage   int64   `json:"total_usage"`
	AverageUsage float64 `json:"average_usage"`
}

type UsageReport struct {
	DailyUsage    []DailyUsage    `json:"daily_usage"`
	CategoryUsage []CategoryUsage `json:"category_usage"`
}

// StatsService aggregates prompt usage.
type StatsService struct {
	db      *gorm.DB
	prompts *PromptService
	now     func() time.Time
}

func NewStatsService(db *gorm.DB, prompts *PromptService) *StatsService {
	return &StatsService{db: db, prompts: prompts, now: time.Now}
}

// Dashboard returns totals, the newest and most used prompts, and a
// per-category breakdown that includes empty categories.
func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	var d Dashboard

	if err := db.Model(&models.Category{}).Count(&d.Overview.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Prompt{}).Count(&d.Overview.TotalPrompts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Prompt{}).Select("COALESCE(SUM(usage_count), 0)").Scan(&d.Overview.TotalUsage).Error; err != nil {
		return nil, err
	}

	var err error
	if d.RecentPrompts, err = s.prompts.Recent(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if d.MostUsedPrompts, err = s.prompts.MostUsed(ctx, dashboardListSize); err != nil {
		return nil, err
	}

	d.CategoryBreakdown = make([]CategoryBreakdown, 0)
	err = db.Model(&models.Category{}).
		Select("categories.name AS category_name, COUNT(prompts.id) AS prompt_count, COALESCE(SUM(prompts.usage_count), 0) AS total_usage").
		Joins("LEFT JOIN prompts ON prompts.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.id asc").
		Scan(&d.CategoryBreakdown).Error
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// Usage reports usage over the last 30 days, bucketed by the UTC day each
// prompt was last touched, plus per-category totals and averages.
func (s *StatsService) Usage(ctx context.Context) (*UsageReport, error) {
	db := s.db.WithContext(ctx)
	since := s.now().Add(-usageWindow)

	var rows []struct {
		UpdatedAt  time.Time
		UsageCount int64
	}
	err := db.Model(&models.Prompt{}).
		Select("updated_at, usage_count").
		Where("updated_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int64)
	for _, r := range rows {
		byDay[r.UpdatedAt.UTC().Format(time.DateOnly)] += r.UsageCount
	}
	report := &UsageReport{
		DailyUsage:    make([]DailyUsage, 0, len(byDay)),
		CategoryUsage: make([]CategoryUsage, 0),
	}
	for day, usage := range byDay {
		report.DailyUsage = append(report.DailyUsage, DailyUsage{Date: day, Usage: usage})
	}
	sort.Slice(report.DailyUsage, func(i, j int) bool {
		return report.DailyUsage[i].Date < report.DailyUsage[j].Date
	})

	err = db.Model(&models.Category{}).
		Select("categories.name AS category_name, COALESCE(SUM(prompts.usage_count), 0) AS total_usage, COALESCE(AVG(prompts.usage_count), 0) AS average_usage").
		Joins("JOIN prompts ON prompts.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.id asc").
		Scan(&report.CategoryUsage).Error
	if err != nil {
		return nil, err
	}

	return report, nil
}

// Trending returns prompts touched in the last 7 days, most used first.
func (s *StatsService) Trending(ctx context.Context, limit int) ([]models.Prompt, error) {
	since := s.now().Add(-trendingWindow)
	q := s.prompts.query(ctx).
		Where("prompts.updated_at >= ?", since).
		Order("prompts.usage_count desc").
		Order("prompts.id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	prompts := make([]models.Prompt, 0)
	if err := q.Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}
