package services

import (
	"context"
	"fmt"
	"math"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
)

// FeeScheduleService manages the per-class tuition schedules
type FeeScheduleService struct {
	repo      repository.FeeScheduleRepository
	classRepo repository.ClassRepository
	auditSvc  *AuditService
}

func NewFeeScheduleService(repo repository.FeeScheduleRepository, classRepo repository.ClassRepository, auditSvc *AuditService) *FeeScheduleService {
	return &FeeScheduleService{
		repo:      repo,
		classRepo: classRepo,
		auditSvc:  auditSvc,
	}
}

// DeriveTermAmount splits a yearly amount over the three terms, rounding up
// to the next whole currency unit so the three terms always cover the year.
func DeriveTermAmount(yearlyAmount float64) float64 {
	if yearlyAmount <= 0 {
		return 0
	}
	return math.Ceil(yearlyAmount / models.TermCount)
}

func (s *FeeScheduleService) FindByID(ctx context.Context, id uint) (*models.FeeSchedule, error) {
	return s.repo.FindByID(ctx, id)
}

// FindForClass returns the schedule of a class for one academic year
func (s *FeeScheduleService) FindForClass(ctx context.Context, classID uint, academicYear string) (*models.FeeSchedule, error) {
	return s.repo.FindByClassAndYear(ctx, classID, academicYear)
}

func (s *FeeScheduleService) List(ctx context.Context, query *repository.ListQuery) ([]models.FeeSchedule, int64, error) {
	return s.repo.List(ctx, query)
}

// Create validates and stores a schedule. The term amount is always
// recomputed server-side; whatever the client sent is overwritten.
func (s *FeeScheduleService) Create(ctx context.Context, schedule *models.FeeSchedule, actorID uint) error {
	if err := s.validate(schedule); err != nil {
		return err
	}

	class, err := s.classRepo.FindByID(ctx, schedule.ClassID)
	if err != nil {
		return fmt.Errorf("%w : classe introuvable", ErrValidation)
	}
	schedule.ClassName = class.Name

	if schedule.AcademicYear == "" {
		schedule.AcademicYear = models.CurrentAcademicYear()
	}

	// One schedule per class per year
	if existing, err := s.repo.FindByClassAndYear(ctx, schedule.ClassID, schedule.AcademicYear); err == nil && existing != nil {
		return fmt.Errorf("%w : un barème existe déjà pour %s en %s", ErrDuplicate, class.Name, schedule.AcademicYear)
	}

	schedule.TermAmount = DeriveTermAmount(schedule.YearlyAmount)

	if err := s.repo.Create(ctx, schedule); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "FeeSchedule", schedule.ID,
		fmt.Sprintf("Barème créé : %s %s, annuel %.0f", schedule.ClassName, schedule.AcademicYear, schedule.YearlyAmount), "", "")
}

// Update validates and stores changes, recomputing the term amount
func (s *FeeScheduleService) Update(ctx context.Context, schedule *models.FeeSchedule, actorID uint) error {
	if err := s.validate(schedule); err != nil {
		return err
	}

	schedule.TermAmount = DeriveTermAmount(schedule.YearlyAmount)

	if err := s.repo.Update(ctx, schedule); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "FeeSchedule", schedule.ID,
		fmt.Sprintf("Barème mis à jour : %s %s, annuel %.0f", schedule.ClassName, schedule.AcademicYear, schedule.YearlyAmount), "", "")
}

func (s *FeeScheduleService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "FeeSchedule", id, "Barème supprimé", "", "")
}

func (s *FeeScheduleService) validate(schedule *models.FeeSchedule) error {
	if schedule.ClassID == 0 {
		return fmt.Errorf("%w : classe requise", ErrValidation)
	}
	if schedule.YearlyAmount < 0 {
		return fmt.Errorf("%w : le montant annuel ne peut pas être négatif", ErrValidation)
	}
	if schedule.RegistrationFee < 0 {
		return fmt.Errorf("%w : les frais d'inscription ne peuvent pas être négatifs", ErrValidation)
	}
	if schedule.AcademicYear != "" && !models.IsAcademicYearLabel(schedule.AcademicYear) {
		return fmt.Errorf("%w : année scolaire attendue au format 2025-2026", ErrValidation)
	}
	return nil
}
