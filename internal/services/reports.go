package services

import (
	"context"
	"time"

	"project-tracker/internal/cache"
	"project-tracker/internal/models"
	"project-tracker/internal/store"

	"github.com/gofrs/uuid"
)

// reportWindowDays is the forward-looking window: today plus seven more
// calendar dates, eight inclusive.
const reportWindowDays = 7

// Report buckets upcoming tasks per deadline date for charting.
type Report struct {
	Dates       []string                 `json:"dates"`
	Counts      []int                    `json:"counts"`
	TasksByDate map[string][]models.Task `json:"tasks_by_date"`
}

type ReportService interface {
	BuildReport(ctx context.Context, actor Actor, today time.Time) (Report, error)
}

type ReportServiceImpl struct {
	store store.Store
	cache *cache.Cache
}

func NewReportService(st store.Store, cacheInstance *cache.Cache) *ReportServiceImpl {
	return &ReportServiceImpl{store: st, cache: cacheInstance}
}

func (s *ReportServiceImpl) BuildReport(ctx context.Context, actor Actor, today time.Time) (Report, error) {
	if decision := Authorize(actor, nil, ActionViewReports); !decision.Allowed {
		return Report{}, forbidden(decision.Reason)
	}

	today = dateOnly(today)
	cacheKey := "reports:" + actor.ID.String() + ":" + today.Format("2006-01-02")
	if s.cache != nil {
		var cached Report
		if err := s.cache.Get(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	filter := store.TaskFilter{}
	from := today
	to := today.AddDate(0, 0, reportWindowDays)
	filter.From = &from
	filter.To = &to

	// Managers and Editors are scoped to their own projects; Viewers see all.
	if actor.Role != models.RoleViewer {
		ownerID := actor.ID
		projects, err := s.store.ListProjects(ctx, store.ProjectFilter{OwnerID: &ownerID})
		if err != nil {
			return Report{}, err
		}
		ids := make([]uuid.UUID, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		filter.ProjectIDs = ids
	}

	var tasks []models.Task
	if filter.ProjectIDs == nil || len(filter.ProjectIDs) > 0 {
		var err error
		tasks, err = s.store.ListTasks(ctx, filter)
		if err != nil {
			return Report{}, err
		}
	}

	report := Report{
		Dates:       make([]string, 0, reportWindowDays+1),
		Counts:      make([]int, reportWindowDays+1),
		TasksByDate: make(map[string][]models.Task, reportWindowDays+1),
	}
	index := make(map[string]int, reportWindowDays+1)
	for i := 0; i <= reportWindowDays; i++ {
		date := today.AddDate(0, 0, i).Format("2006-01-02")
		index[date] = i
		report.Dates = append(report.Dates, date)
		report.TasksByDate[date] = []models.Task{}
	}

	for _, task := range tasks {
		date := dateOnly(task.Deadline).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			continue
		}
		report.Counts[i]++
		report.TasksByDate[date] = append(report.TasksByDate[date], task)
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, report, 5*time.Minute)
	}
	return report, nil
}
