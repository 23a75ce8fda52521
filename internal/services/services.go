package services

import (
	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/jobs"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Student      *StudentService
	Teacher      *TeacherService
	Class        *ClassService
	Course       *CourseService
	Schedule     *ScheduleService
	Evaluation   *EvaluationService
	FeeSchedule  *FeeScheduleService
	Payment      *PaymentService
	Receipt      *ReceiptService
	Balance      *BalanceService
	Export       *ExportService
	Report       *ReportService
	Dashboard    *DashboardService
	Notification *NotificationService
	Audit        *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, db *gorm.DB) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	auditSvc := NewAuditService(db)

	receiptSvc := NewReceiptService(repos.Receipt, notificationSvc, auditSvc, cfg)
	balanceSvc := NewBalanceService(repos.Receipt, repos.Student)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, notificationSvc, auditSvc),
		Student:      NewStudentService(repos.Student, repos.Class, auditSvc),
		Teacher:      NewTeacherService(repos.Teacher, repos.Course, auditSvc),
		Class:        NewClassService(repos.Class, repos.Student, auditSvc),
		Course:       NewCourseService(repos.Course, repos.Class, repos.Teacher, auditSvc),
		Schedule:     NewScheduleService(repos.Schedule, repos.Course, auditSvc),
		Evaluation:   NewEvaluationService(repos.Evaluation, repos.Course, auditSvc),
		FeeSchedule:  NewFeeScheduleService(repos.FeeSchedule, repos.Class, auditSvc),
		Payment:      NewPaymentService(repos.Student, repos.FeeSchedule, repos.PaymentPlan, receiptSvc, notificationSvc, auditSvc, worker),
		Receipt:      receiptSvc,
		Balance:      balanceSvc,
		Export:       NewExportService(repos.Receipt, cfg),
		Report:       NewReportService(repos.Receipt, repos.Student, balanceSvc, cfg),
		Dashboard:    NewDashboardService(repos.Dashboard, repos.Receipt, repos.Student, repos.Teacher, repos.Class),
		Notification: notificationSvc,
		Audit:        auditSvc,
	}
}
