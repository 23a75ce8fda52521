package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// ScheduleService places courses on the weekly timetable grid
type ScheduleService struct {
	repo       repository.ScheduleRepository
	courseRepo repository.CourseRepository
	auditSvc   *AuditService
}

func NewScheduleService(repo repository.ScheduleRepository, courseRepo repository.CourseRepository, auditSvc *AuditService) *ScheduleService {
	return &ScheduleService{
		repo:       repo,
		courseRepo: courseRepo,
		auditSvc:   auditSvc,
	}
}

func (s *ScheduleService) FindByClass(ctx context.Context, classID uint, academicYear string) ([]models.ScheduleSlot, error) {
	return s.repo.FindByClass(ctx, classID, academicYear)
}

// Place puts a course on a weekday/period cell after checking that neither
// the class nor the course's teacher is already booked there.
func (s *ScheduleService) Place(ctx context.Context, slot *models.ScheduleSlot, actorID uint) error {
	if !slot.InGrid() {
		return fmt.Errorf("%w : créneau hors de la grille horaire", ErrValidation)
	}

	course, err := s.courseRepo.FindByID(ctx, slot.CourseID)
	if err != nil {
		return fmt.Errorf("%w : cours introuvable", ErrValidation)
	}
	slot.ClassID = course.ClassID
	if slot.AcademicYear == "" {
		slot.AcademicYear = course.AcademicYear
	}

	conflicts, err := s.repo.FindConflicts(ctx, slot.Weekday, slot.Period, slot.ClassID, course.TeacherID, slot.AcademicYear)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w : le créneau est déjà occupé", ErrValidation)
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "ScheduleSlot", slot.ID,
		fmt.Sprintf("Cours %s placé : jour %d, période %d", course.Name, slot.Weekday, slot.Period), "", "")
}

func (s *ScheduleService) Remove(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "ScheduleSlot", id, "Créneau libéré", "", "")
}
