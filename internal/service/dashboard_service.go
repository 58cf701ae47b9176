package service

import "github.com/travelmada/internal/model"

const dashboardRecentMessages = 5

// CategoryCount is the number of posts in one category.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// DailyViews is one point of the weekly views chart.
type DailyViews struct {
	Day   string
	Views int
}

// DashboardStats summarises the content for the admin dashboard.
type DashboardStats struct {
	TotalPosts     int
	Published      int
	Drafts         int
	Categories     []CategoryCount
	WeeklyViews    []DailyViews
	MaxDailyViews  int
	Messages       int
	RecentMessages []model.ContactMessage
}

// weeklyViews is a fixed sample series; there is no traffic tracking.
var weeklyViews = []DailyViews{
	{Day: "Mon", Views: 4000},
	{Day: "Tue", Views: 3000},
	{Day: "Wed", Views: 2000},
	{Day: "Thu", Views: 2780},
	{Day: "Fri", Views: 1890},
	{Day: "Sat", Views: 2390},
	{Day: "Sun", Views: 3490},
}

// DashboardService aggregates post and inbox figures.
type DashboardService struct {
	posts   *PostService
	contact *ContactService
}

// NewDashboardService creates a DashboardService. contact may be nil.
func NewDashboardService(posts *PostService, contact *ContactService) *DashboardService {
	if posts == nil {
		panic("service: NewDashboardService requires a post service")
	}
	return &DashboardService{posts: posts, contact: contact}
}

// Stats computes the dashboard figures.
func (s *DashboardService) Stats() DashboardStats {
	posts := s.posts.ListAll()

	counts := make(map[model.Category]int, len(model.Categories))
	stats := DashboardStats{TotalPosts: len(posts)}
	for _, post := range posts {
		if post.Published() {
			stats.Published++
		} else {
			stats.Drafts++
		}
		counts[post.Category]++
	}
	for _, category := range model.Categories {
		stats.Categories = append(stats.Categories, CategoryCount{Category: category, Count: counts[category]})
	}

	stats.WeeklyViews = append([]DailyViews(nil), weeklyViews...)
	for _, day := range stats.WeeklyViews {
		if day.Views > stats.MaxDailyViews {
			stats.MaxDailyViews = day.Views
		}
	}

	if s.contact != nil {
		stats.Messages = s.contact.Count()
		stats.RecentMessages = s.contact.Recent(dashboardRecentMessages)
	}
	return stats
}
