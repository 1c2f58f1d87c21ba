package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/repository"
)

type PlanService struct {
	planRepo  *repository.PlanRepository
	eventRepo *repository.EventRepository
	userRepo  *repository.UserRepository
}

func NewPlanService(
	planRepo *repository.PlanRepository,
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
) *PlanService {
	return &PlanService{
		planRepo:  planRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// CreatePlan persists the plan and its line items as one atomic unit.
// There is no incremental item editing afterwards.
func (s *PlanService) CreatePlan(userID uint, req models.CreatePlanRequest) (*models.EventPlan, error) {
	if err := s.checkOwnership(req.EventID, userID); err != nil {
		return nil, err
	}

	if req.PricePerPerson.LessThan(decimal.Zero) {
		return nil, errors.New("price per person cannot be negative")
	}

	plan := &models.EventPlan{
		EventID:          req.EventID,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		PricePerPerson:   req.PricePerPerson,
		Currency:         req.Currency,
	}
	for i, item := range req.Items {
		plan.Items = append(plan.Items, models.EventPlanItem{
			Title:       item.Title,
			Description: item.Description,
			SortOrder:   i,
		})
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(plan.ID)
}

func (s *PlanService) GetEventPlans(eventID, userID uint) ([]models.EventPlan, error) {
	if err := s.checkOwnership(eventID, userID); err != nil {
		return nil, err
	}
	return s.planRepo.GetByEventID(eventID)
}

// DeletePlan removes a plan whole, items included.
func (s *PlanService) DeletePlan(planID, userID uint) error {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(plan.EventID, userID); err != nil {
		return err
	}
	return s.planRepo.Delete(planID)
}

func (s *PlanService) checkOwnership(eventID, userID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	organizer, err := s.userRepo.GetOrganizerByUserID(userID)
	if err != nil {
		return ErrNotEventOwner
	}
	if event.OrganizerID != organizer.ID {
		return ErrNotEventOwner
	}
	return nil
}
