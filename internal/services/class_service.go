package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// ClassService handles class (classroom group) business logic
type ClassService struct {
	repo        repository.ClassRepository
	studentRepo repository.StudentRepository
	auditSvc    *AuditService
}

func NewClassService(repo repository.ClassRepository, studentRepo repository.StudentRepository, auditSvc *AuditService) *ClassService {
	return &ClassService{
		repo:        repo,
		studentRepo: studentRepo,
		auditSvc:    auditSvc,
	}
}

func (s *ClassService) FindByID(ctx context.Context, id uint) (*models.Class, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClassService) List(ctx context.Context, query *repository.ListQuery) ([]models.Class, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ClassService) Students(ctx context.Context, classID uint) ([]models.Student, error) {
	if _, err := s.repo.FindByID(ctx, classID); err != nil {
		return nil, ErrNotFound
	}
	return s.studentRepo.FindByClass(ctx, classID)
}

func (s *ClassService) Create(ctx context.Context, class *models.Class, actorID uint) error {
	if class.Name == "" {
		return fmt.Errorf("%w : nom de classe requis", ErrValidation)
	}
	if class.AcademicYear == "" {
		class.AcademicYear = models.CurrentAcademicYear()
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Class", class.ID,
		fmt.Sprintf("Classe créée : %s (%s)", class.Name, class.AcademicYear), "", "")
}

func (s *ClassService) Update(ctx context.Context, class *models.Class, actorID uint) error {
	if err := s.repo.Update(ctx, class); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "Class", class.ID,
		fmt.Sprintf("Classe mise à jour : %s", class.Name), "", "")
}

// Delete removes the class and unassigns its students atomically.
func (s *ClassService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.DeleteWithUnassign(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "Class", id,
		"Classe supprimée, élèves désaffectés", "", "")
}
