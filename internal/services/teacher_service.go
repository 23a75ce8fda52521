package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// TeacherService handles teacher records
type TeacherService struct {
	repo       repository.TeacherRepository
	courseRepo repository.CourseRepository
	auditSvc   *AuditService
}

func NewTeacherService(repo repository.TeacherRepository, courseRepo repository.CourseRepository, auditSvc *AuditService) *TeacherService {
	return &TeacherService{
		repo:       repo,
		courseRepo: courseRepo,
		auditSvc:   auditSvc,
	}
}

func (s *TeacherService) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TeacherService) List(ctx context.Context, query *repository.ListQuery) ([]models.Teacher, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *TeacherService) Create(ctx context.Context, teacher *models.Teacher, actorID uint) error {
	if teacher.FirstName == "" || teacher.LastName == "" {
		return fmt.Errorf("%w : nom et prénom requis", ErrValidation)
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Teacher", teacher.ID,
		fmt.Sprintf("Enseignant créé : %s", teacher.FullName()), "", "")
}

func (s *TeacherService) Update(ctx context.Context, teacher *models.Teacher, actorID uint) error {
	if err := s.repo.Update(ctx, teacher); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "Teacher", teacher.ID,
		fmt.Sprintf("Enseignant mis à jour : %s", teacher.FullName()), "", "")
}

// Delete removes a teacher. Courses keep working: their teacher reference is
// live, so deletion is refused while courses still point at the teacher.
func (s *TeacherService) Delete(ctx context.Context, id uint, actorID uint) error {
	courses, err := s.courseRepo.FindByTeacher(ctx, id)
	if err != nil {
		return err
	}
	if len(courses) > 0 {
		return fmt.Errorf("%w : l'enseignant est encore affecté à %d cours", ErrValidation, len(courses))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "Teacher", id, "Enseignant supprimé", "", "")
}
