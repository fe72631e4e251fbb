package handlers

import (
	"errors"
	"net/http"
	"time"

	providerRepo "servana/database/repository/provider"
	"servana/middleware"
	"servana/models"
	"servana/services/scheduling"
	"servana/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProviderHandler manages provider records: service offerings, the weekly
// availability template, date exceptions, and the booking policy.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

type providerInput struct {
	Name       string                           `json:"name" binding:"required"`
	Services   []models.ServiceOffering         `json:"services"`
	Template   map[string][]models.OpenInterval `json:"template"`
	Exceptions []models.AvailabilityException   `json:"exceptions"`
	Policy     models.BookingPolicy             `json:"policy"`
}

// RegisterProviderHandler handles POST /api/providers (admin only, enforced in routes).
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var input providerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	now := time.Now()
	provider := models.Provider{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Services:   input.Services,
		Template:   input.Template,
		Exceptions: input.Exceptions,
		Policy:     input.Policy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range provider.Services {
		if provider.Services[i].ID == "" {
			provider.Services[i].ID = uuid.New().String()
		}
	}

	if err := h.Repo.Create(c.Request.Context(), &provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register provider", err.Error())
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// GetProviderByIDHandler handles GET /api/providers/:id.
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	provider, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// UpdateProviderHandler handles PATCH /api/providers/:id. Provider records are
// mutated only by the owning provider or an admin.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthenticated", "no authenticated actor")
		return
	}
	providerID := c.Param("id")
	if actor.Role != models.RoleAdmin && actor.ID != providerID {
		utils.JSONError(c, http.StatusForbidden, "Unauthorized", "providers may only update their own record")
		return
	}

	provider, err := h.Repo.GetByID(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch provider", err.Error())
		return
	}

	var input struct {
		Name       *string                           `json:"name"`
		Services   *[]models.ServiceOffering         `json:"services"`
		Template   *map[string][]models.OpenInterval `json:"template"`
		Exceptions *[]models.AvailabilityException   `json:"exceptions"`
		Policy     *models.BookingPolicy             `json:"policy"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if input.Name != nil {
		provider.Name = *input.Name
	}
	if input.Services != nil {
		provider.Services = *input.Services
		for i := range provider.Services {
			if provider.Services[i].ID == "" {
				provider.Services[i].ID = uuid.New().String()
			}
		}
	}
	if input.Template != nil {
		provider.Template = *input.Template
	}
	if input.Exceptions != nil {
		provider.Exceptions = *input.Exceptions
	}
	if input.Policy != nil {
		provider.Policy = *input.Policy
	}
	provider.UpdatedAt = time.Now()

	if err := h.Repo.Update(c.Request.Context(), provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// GetDayAvailabilityHandler handles GET /api/providers/:id/availability.
// It returns the provider's effective open intervals for one date.
func (h *ProviderHandler) GetDayAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "query parameter 'date' is required")
		return
	}

	provider, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch provider", err.Error())
		return
	}

	intervals, err := scheduling.EffectiveIntervals(provider, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "intervals": intervals})
}
