package handlers

import (
	"github.com/nkamgang/scolaris-api/internal/services"
	"github.com/nkamgang/scolaris-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Student      *StudentHandler
	Teacher      *TeacherHandler
	Class        *ClassHandler
	Course       *CourseHandler
	Schedule     *ScheduleHandler
	Evaluation   *EvaluationHandler
	FeeSchedule  *FeeScheduleHandler
	Payment      *PaymentHandler
	Report       *ReportHandler
	Dashboard    *DashboardHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, storage *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.User),
		Student:      NewStudentHandler(svcs.Student, svcs.Balance, svcs.Receipt),
		Teacher:      NewTeacherHandler(svcs.Teacher),
		Class:        NewClassHandler(svcs.Class),
		Course:       NewCourseHandler(svcs.Course),
		Schedule:     NewScheduleHandler(svcs.Schedule),
		Evaluation:   NewEvaluationHandler(svcs.Evaluation),
		FeeSchedule:  NewFeeScheduleHandler(svcs.FeeSchedule),
		Payment:      NewPaymentHandler(svcs.Payment, svcs.Receipt, svcs.Export, storage),
		Report:       NewReportHandler(svcs.Report, svcs.Export),
		Dashboard:    NewDashboardHandler(svcs.Dashboard),
		Notification: NewNotificationHandler(svcs.Notification),
	}
}
