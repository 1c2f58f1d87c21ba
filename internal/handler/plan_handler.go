package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/service"
	"github.com/planningkart/planningkart/pkg/utils"
)

type PlanHandler struct {
	planService *service.PlanService
	validator   *utils.Validator
}

func NewPlanHandler(planService *service.PlanService, validator *utils.Validator) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		validator:   validator,
	}
}

func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	var req models.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	userID := c.Locals("userID").(uint)

	plan, err := h.planService.CreatePlan(userID, req)
	if err != nil {
		return planErrorStatus(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(plan, "Plan created successfully"))
}

func (h *PlanHandler) GetEventPlans(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Query("eventId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid or missing eventId"))
	}

	userID := c.Locals("userID").(uint)

	plans, err := h.planService.GetEventPlans(uint(eventID), userID)
	if err != nil {
		return planErrorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(plans, "Plans retrieved successfully"))
}

func (h *PlanHandler) DeletePlan(c *fiber.Ctx) error {
	planID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid plan ID"))
	}

	userID := c.Locals("userID").(uint)

	if err := h.planService.DeletePlan(planID, userID); err != nil {
		return planErrorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Plan deleted successfully"))
}

func planErrorStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Not found"))
	case errors.Is(err, service.ErrNotEventOwner):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
}
