package services

import (
	"context"
	"fmt"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// CourseService handles course (subject taught in a class) business logic.
// The teacher reference of a course is live: renaming a teacher is reflected
// everywhere the course is read, unlike receipt snapshots.
type CourseService struct {
	repo        repository.CourseRepository
	classRepo   repository.ClassRepository
	teacherRepo repository.TeacherRepository
	auditSvc    *AuditService
}

func NewCourseService(repo repository.CourseRepository, classRepo repository.ClassRepository, teacherRepo repository.TeacherRepository, auditSvc *AuditService) *CourseService {
	return &CourseService{
		repo:        repo,
		classRepo:   classRepo,
		teacherRepo: teacherRepo,
		auditSvc:    auditSvc,
	}
}

func (s *CourseService) FindByID(ctx context.Context, id uint) (*models.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) FindByClass(ctx context.Context, classID uint) ([]models.Course, error) {
	return s.repo.FindByClass(ctx, classID)
}

func (s *CourseService) List(ctx context.Context, query *repository.ListQuery) ([]models.Course, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *CourseService) Create(ctx context.Context, course *models.Course, actorID uint) error {
	if course.Name == "" {
		return fmt.Errorf("%w : nom du cours requis", ErrValidation)
	}
	if _, err := s.classRepo.FindByID(ctx, course.ClassID); err != nil {
		return fmt.Errorf("%w : classe introuvable", ErrValidation)
	}
	if course.TeacherID != nil {
		if _, err := s.teacherRepo.FindByID(ctx, *course.TeacherID); err != nil {
			return fmt.Errorf("%w : enseignant introuvable", ErrValidation)
		}
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Course", course.ID,
		fmt.Sprintf("Cours créé : %s", course.Name), "", "")
}

func (s *CourseService) Update(ctx context.Context, course *models.Course, actorID uint) error {
	if course.TeacherID != nil {
		if _, err := s.teacherRepo.FindByID(ctx, *course.TeacherID); err != nil {
			return fmt.Errorf("%w : enseignant introuvable", ErrValidation)
		}
	}
	if err := s.repo.Update(ctx, course); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "Course", course.ID,
		fmt.Sprintf("Cours mis à jour : %s", course.Name), "", "")
}

func (s *CourseService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "Course", id, "Cours supprimé", "", "")
}
