package dashboard

import (
	"time"

	"github.com/randalmurphal/workdeck/internal/db"
)

// Health trend values derived from the health score.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Activity kinds the feed maps raw notification types onto.
const (
	ActivityTaskCompleted = "task_completed"
	ActivityTaskAssigned  = "task_assigned"
	ActivityComment       = "comment"
	ActivityMention       = "mention"
	ActivityProject       = "project"
	ActivitySystem        = "system"
)

// Dashboard is the composite result assembled for the presentation layer.
type Dashboard struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	Stats         WorkspaceStats  `json:"stats"`
	Health        HealthStatus    `json:"health"`
	Productivity  int             `json:"productivity"`
	Finance       FinanceSummary  `json:"finance"`
	CostTrend     []CostTrendRow  `json:"cost_trend"`
	Overview      []OverviewEntry `json:"overview"`
	Activity      []ActivityEntry `json:"activity"`
	Contributions []Contribution  `json:"contributions"`
	Burndown      []BurndownPoint `json:"burndown"`
	Sprints       []db.Sprint     `json:"sprints"`
}

// WorkspaceStats holds plain tallies over the project/task snapshot.
type WorkspaceStats struct {
	TotalProjects   int     `json:"total_projects"`
	ActiveProjects  int     `json:"active_projects"`
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	OverdueTasks    int     `json:"overdue_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

// HealthStatus is the composite health score with its derived trend.
type HealthStatus struct {
	Score int    `json:"score"` // 0-100
	Trend string `json:"trend"` // up, down, stable
}

// FinanceSummary rolls up budget and spend across the workspace.
type FinanceSummary struct {
	TotalBudget float64          `json:"total_budget"`
	TotalSpent  float64          `json:"total_spent"`
	Remaining   float64          `json:"remaining"`
	Utilization float64          `json:"utilization"` // percent of budget spent
	Projects    []ProjectFinance `json:"projects"`
}

// ProjectFinance is the per-project slice of the financial rollup.
// Only projects with nonzero budget or spend appear.
type ProjectFinance struct {
	ProjectID   string  `json:"project_id"`
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Utilization float64 `json:"utilization"`
}

// CostTrendRow is one month of the trailing cost trend.
type CostTrendRow struct {
	Month   string  `json:"month"` // YYYY-MM
	Cost    float64 `json:"cost"`
	Expense float64 `json:"expense"`
	Total   float64 `json:"total"`
}

// OverviewEntry is one month of the task-completion overview.
type OverviewEntry struct {
	Month         string `json:"month"` // YYYY-MM
	Total         int    `json:"total"`
	Completed     int    `json:"completed"`
	IsProjected   bool   `json:"is_projected"`
	IsHighlighted bool   `json:"is_highlighted"`
}

// ActivityEntry is one enriched row of the activity feed.
type ActivityEntry struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	ProjectName string    `json:"project_name,omitempty"`
	TaskTitle   string    `json:"task_title,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Contribution is one user's scored contribution summary.
type Contribution struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar,omitempty"`
	TasksCompleted int    `json:"tasks_completed"`
	TasksCreated   int    `json:"tasks_created"`
	CommentsAdded  int    `json:"comments_added"`
	TotalPoints    int    `json:"total_points"`
}

// BurndownPoint is one day of the trailing burn-down window.
type BurndownPoint struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Remaining int     `json:"remaining"`
	Ideal     float64 `json:"ideal"`
}

// ProjectStatistics is the narrower per-project (or workspace) view.
type ProjectStatistics struct {
	ProjectID          string         `json:"project_id,omitempty"`
	Stats              WorkspaceStats `json:"stats"`
	Health             HealthStatus   `json:"health"`
	Productivity       int            `json:"productivity"`
	Finance            FinanceSummary `json:"finance"`
	TotalEstimatedCost float64        `json:"total_estimated_cost"`
}
