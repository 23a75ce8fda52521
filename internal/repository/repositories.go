package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Student      StudentRepository
	Teacher      TeacherRepository
	Class        ClassRepository
	Course       CourseRepository
	Schedule     ScheduleRepository
	Evaluation   EvaluationRepository
	FeeSchedule  FeeScheduleRepository
	PaymentPlan  PaymentPlanRepository
	Receipt      ReceiptRepository
	Notification NotificationRepository
	Dashboard    DashboardRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Student:      NewStudentRepository(db),
		Teacher:      NewTeacherRepository(db),
		Class:        NewClassRepository(db),
		Course:       NewCourseRepository(db),
		Schedule:     NewScheduleRepository(db),
		Evaluation:   NewEvaluationRepository(db),
		FeeSchedule:  NewFeeScheduleRepository(db),
		PaymentPlan:  NewPaymentPlanRepository(db),
		Receipt:      NewReceiptRepository(db),
		Notification: NewNotificationRepository(db),
		Dashboard:    NewDashboardRepository(db),
	}
}

// ListQuery carries common pagination/search/sort parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 20
	}
	return (q.Page - 1) * q.PerPage
}

// isDuplicateKeyError reports a Postgres unique violation on the named constraint
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}
