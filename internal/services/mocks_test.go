package services

import (
	"context"
	"time"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// Mock repositories embed the interface so only the methods a test cares
// about need an override; anything else returns zero values.

type mockReceiptRepository struct {
	repository.ReceiptRepository
	mockCreate               func(ctx context.Context, receipt *models.Receipt) error
	mockFindByID             func(ctx context.Context, id uint) (*models.Receipt, error)
	mockFindByStudent        func(ctx context.Context, studentID uint) ([]models.Receipt, error)
	mockFindByStudentAndYear func(ctx context.Context, studentID uint, academicYear string) ([]models.Receipt, error)
	mockCount                func(ctx context.Context) (int64, error)
	mockUpdateStatus         func(ctx context.Context, id uint, status string) error
	mockList                 func(ctx context.Context, query *repository.ListQuery) ([]models.Receipt, int64, error)
	mockFindPendingBefore    func(ctx context.Context, cutoff time.Time) ([]models.Receipt, error)
}

func (m *mockReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, receipt)
	}
	return nil
}

func (m *mockReceiptRepository) FindByID(ctx context.Context, id uint) (*models.Receipt, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockReceiptRepository) FindByStudent(ctx context.Context, studentID uint) ([]models.Receipt, error) {
	if m.mockFindByStudent != nil {
		return m.mockFindByStudent(ctx, studentID)
	}
	return nil, nil
}

func (m *mockReceiptRepository) FindByStudentAndYear(ctx context.Context, studentID uint, academicYear string) ([]models.Receipt, error) {
	if m.mockFindByStudentAndYear != nil {
		return m.mockFindByStudentAndYear(ctx, studentID, academicYear)
	}
	return nil, nil
}

func (m *mockReceiptRepository) Count(ctx context.Context) (int64, error) {
	if m.mockCount != nil {
		return m.mockCount(ctx)
	}
	return 0, nil
}

func (m *mockReceiptRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, id, status)
	}
	return nil
}

func (m *mockReceiptRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Receipt, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

func (m *mockReceiptRepository) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Receipt, error) {
	if m.mockFindPendingBefore != nil {
		return m.mockFindPendingBefore(ctx, cutoff)
	}
	return nil, nil
}

type mockStudentRepository struct {
	repository.StudentRepository
	mockFindByID          func(ctx context.Context, id uint) (*models.Student, error)
	mockFindByIDWithClass func(ctx context.Context, id uint) (*models.Student, error)
	mockFindAllIDs        func(ctx context.Context) ([]uint, error)
}

func (m *mockStudentRepository) FindAllIDs(ctx context.Context) ([]uint, error) {
	if m.mockFindAllIDs != nil {
		return m.mockFindAllIDs(ctx)
	}
	return nil, nil
}

func (m *mockStudentRepository) FindByID(ctx context.Context, id uint) (*models.Student, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockStudentRepository) FindByIDWithClass(ctx context.Context, id uint) (*models.Student, error) {
	if m.mockFindByIDWithClass != nil {
		return m.mockFindByIDWithClass(ctx, id)
	}
	return nil, nil
}

type mockPaymentPlanRepository struct {
	repository.PaymentPlanRepository
	mockFindByID func(ctx context.Context, id uint) (*models.PaymentPlan, error)
}

func (m *mockPaymentPlanRepository) FindByID(ctx context.Context, id uint) (*models.PaymentPlan, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

type mockFeeScheduleRepository struct {
	repository.FeeScheduleRepository
	mockCreate             func(ctx context.Context, schedule *models.FeeSchedule) error
	mockUpdate             func(ctx context.Context, schedule *models.FeeSchedule) error
	mockFindByClassAndYear func(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error)
}

func (m *mockFeeScheduleRepository) Update(ctx context.Context, schedule *models.FeeSchedule) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, schedule)
	}
	return nil
}

func (m *mockFeeScheduleRepository) Create(ctx context.Context, schedule *models.FeeSchedule) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, schedule)
	}
	return nil
}

func (m *mockFeeScheduleRepository) FindByClassAndYear(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
	if m.mockFindByClassAndYear != nil {
		return m.mockFindByClassAndYear(ctx, classID, academicYear)
	}
	return nil, nil
}

type mockClassRepository struct {
	repository.ClassRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Class, error)
}

func (m *mockClassRepository) FindByID(ctx context.Context, id uint) (*models.Class, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

type mockCourseRepository struct {
	repository.CourseRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Course, error)
}

func (m *mockCourseRepository) FindByID(ctx context.Context, id uint) (*models.Course, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

type mockScheduleRepository struct {
	repository.ScheduleRepository
	mockCreate        func(ctx context.Context, slot *models.ScheduleSlot) error
	mockFindConflicts func(ctx context.Context, weekday, period int, classID uint, teacherID *uint, academicYear string) ([]models.ScheduleSlot, error)
}

func (m *mockScheduleRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, slot)
	}
	return nil
}

func (m *mockScheduleRepository) FindConflicts(ctx context.Context, weekday, period int, classID uint, teacherID *uint, academicYear string) ([]models.ScheduleSlot, error) {
	if m.mockFindConflicts != nil {
		return m.mockFindConflicts(ctx, weekday, period, classID, teacherID, academicYear)
	}
	return nil, nil
}

type mockUserRepository struct {
	repository.UserRepository
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindAdmins  func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.mockFindByEmail != nil {
		return m.mockFindByEmail(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) FindAdmins(ctx context.Context) ([]models.User, error) {
	if m.mockFindAdmins != nil {
		return m.mockFindAdmins(ctx)
	}
	return nil, nil
}

type mockRefreshTokenRepository struct {
	repository.RefreshTokenRepository
	mockCreate      func(ctx context.Context, token *models.RefreshToken) error
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	mockDelete      func(ctx context.Context, token string) error
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if m.mockFindByToken != nil {
		return m.mockFindByToken(ctx, token)
	}
	return nil, nil
}

func (m *mockRefreshTokenRepository) Delete(ctx context.Context, token string) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, token)
	}
	return nil
}

type mockNotificationRepository struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}
