package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// EvaluationService schedules exams and tests
type EvaluationService struct {
	repo       repository.EvaluationRepository
	courseRepo repository.CourseRepository
	auditSvc   *AuditService
}

func NewEvaluationService(repo repository.EvaluationRepository, courseRepo repository.CourseRepository, auditSvc *AuditService) *EvaluationService {
	return &EvaluationService{
		repo:       repo,
		courseRepo: courseRepo,
		auditSvc:   auditSvc,
	}
}

func (s *EvaluationService) FindByID(ctx context.Context, id uint) (*models.Evaluation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EvaluationService) FindByClass(ctx context.Context, classID uint, academicYear string) ([]models.Evaluation, error) {
	return s.repo.FindByClass(ctx, classID, academicYear)
}

func (s *EvaluationService) List(ctx context.Context, query *repository.ListQuery) ([]models.Evaluation, int64, error) {
	return s.repo.List(ctx, query)
}

// Create schedules an evaluation. A class holds at most one evaluation per
// date and period cell.
func (s *EvaluationService) Create(ctx context.Context, evaluation *models.Evaluation, actorID uint) error {
	if evaluation.Title == "" {
		return fmt.Errorf("%w : titre requis", ErrValidation)
	}
	if evaluation.Period < models.MinPeriod || evaluation.Period > models.MaxPeriod {
		return fmt.Errorf("%w : période hors de la grille horaire", ErrValidation)
	}
	if evaluation.Term < 1 || evaluation.Term > models.TermCount {
		return fmt.Errorf("%w : trimestre invalide", ErrValidation)
	}

	course, err := s.courseRepo.FindByID(ctx, evaluation.CourseID)
	if err != nil {
		return fmt.Errorf("%w : cours introuvable", ErrValidation)
	}
	evaluation.ClassID = course.ClassID
	if evaluation.AcademicYear == "" {
		evaluation.AcademicYear = course.AcademicYear
	}

	existing, err := s.repo.FindAtSlot(ctx, evaluation.ClassID, evaluation.Date, evaluation.Period)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w : une évaluation occupe déjà ce créneau", ErrValidation)
	}

	if err := s.repo.Create(ctx, evaluation); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Evaluation", evaluation.ID,
		fmt.Sprintf("Évaluation programmée : %s (%s)", evaluation.Title, evaluation.Kind), "", "")
}

func (s *EvaluationService) Update(ctx context.Context, evaluation *models.Evaluation, actorID uint) error {
	if err := s.repo.Update(ctx, evaluation); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "Evaluation", evaluation.ID,
		fmt.Sprintf("Évaluation mise à jour : %s", evaluation.Title), "", "")
}

func (s *EvaluationService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "Evaluation", id, "Évaluation supprimée", "", "")
}
