package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

type DashboardService struct {
	DashboardRepo   *repository.DashboardRepository
	UserService     *UserService
	CourseService   *CourseService
	CalendarService *CalendarService
}

func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	userService *UserService,
	courseService *CourseService,
	calendarService *CalendarService,
) *DashboardService {
	return &DashboardService{
		DashboardRepo:   dashboardRepo,
		UserService:     userService,
		CourseService:   courseService,
		CalendarService: calendarService,
	}
}

type Dashboard struct {
	Profile   *model.User     `json:"profile"`
	Courses   []CourseSummary `json:"courses"`
	Active    int             `json:"activeCourses"`
	Completed int             `json:"completedCourses"`
	Calendar  *GridView       `json:"calendar"`

	Activity *repository.ActivitySummary `json:"activity"`
}

// GetUserDashboard gathers the profile, course list and this month's
// Monday-first mini calendar with today selected, plus activity counts.
func (s *DashboardService) GetUserDashboard(id util.Identity) (*Dashboard, error) {
	profile, err := s.UserService.GetProfile(id)
	if err != nil {
		return nil, err
	}

	courses, err := s.CourseService.ListMyCourses(id, FilterAll, "")
	if err != nil {
		return nil, err
	}

	today := s.CalendarService.now().In(s.CalendarService.Location)
	grid, err := s.CalendarService.Grid(id, ViewDashboard, today.Year(), today.Month(), today)
	if err != nil {
		return nil, err
	}

	activity, err := s.DashboardRepo.ActivitySummary(id.UserID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Profile:  profile,
		Courses:  courses,
		Calendar: grid,
		Activity: activity,
	}
	for _, c := range courses {
		if !c.Enrolled {
			continue
		}
		if c.Completed {
			d.Completed++
		} else {
			d.Active++
		}
	}
	return d, nil
}
