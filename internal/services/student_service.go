package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// StudentService handles student enrollment business logic
type StudentService struct {
	repo      repository.StudentRepository
	classRepo repository.ClassRepository
	auditSvc  *AuditService
}

func NewStudentService(repo repository.StudentRepository, classRepo repository.ClassRepository, auditSvc *AuditService) *StudentService {
	return &StudentService{
		repo:      repo,
		classRepo: classRepo,
		auditSvc:  auditSvc,
	}
}

func (s *StudentService) FindByID(ctx context.Context, id uint) (*models.Student, error) {
	return s.repo.FindByIDWithClass(ctx, id)
}

func (s *StudentService) FindByClass(ctx context.Context, classID uint) ([]models.Student, error) {
	return s.repo.FindByClass(ctx, classID)
}

func (s *StudentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Student, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *StudentService) Create(ctx context.Context, student *models.Student, actorID uint) error {
	if student.FirstName == "" || student.LastName == "" {
		return fmt.Errorf("%w : nom et prénom requis", ErrValidation)
	}
	if student.ClassID != nil {
		if _, err := s.classRepo.FindByID(ctx, *student.ClassID); err != nil {
			return fmt.Errorf("%w : classe introuvable", ErrValidation)
		}
	}
	if student.Status == "" {
		student.Status = models.StudentStatusEnrolled
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Student", student.ID,
		fmt.Sprintf("Élève inscrit : %s", student.FullName()), "", "")
}

func (s *StudentService) Update(ctx context.Context, student *models.Student, actorID uint) error {
	if student.ClassID != nil {
		if _, err := s.classRepo.FindByID(ctx, *student.ClassID); err != nil {
			return fmt.Errorf("%w : classe introuvable", ErrValidation)
		}
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "Student", student.ID,
		fmt.Sprintf("Élève mis à jour : %s", student.FullName()), "", "")
}

func (s *StudentService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "Student", id, "Élève supprimé", "", "")
}
