package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aebalz/mindful-journal/internal/middleware"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

// PromptProvider suggests a reflective prompt for a user.
type PromptProvider interface {
	PromptForUser(ctx context.Context, userID uuid.UUID) string
}

// InsightsProvider computes mood and theme insights.
type InsightsProvider interface {
	GetInsights(ctx context.Context, userID uuid.UUID, daysMood, daysThemes int) (*model.HistoricalInsights, error)
}

// JournalHandler serves the caller's journal entries.
type JournalHandler struct {
	Service  service.JournalServiceInterface
	Prompts  PromptProvider
	Insights InsightsProvider
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(svc service.JournalServiceInterface, prompts PromptProvider, insights InsightsProvider) *JournalHandler {
	return &JournalHandler{Service: svc, Prompts: prompts, Insights: insights}
}

// @Summary Create a journal entry
// @Description Stores the entry and returns at once with status "pending". Analysis and
// @Description article generation run in the background; poll the status resource.
// @Tags Journal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body model.JournalEntryCreate true "Entry"
// @Success 202 {object} model.JournalEntryResponse
// @Failure 422 {object} model.ErrorResponse
// @Router /journal [post]
func (h *JournalHandler) CreateEntryFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	var in model.JournalEntryCreate
	if err := c.BodyParser(&in); err != nil {
		return fiberError(c, newBadRequest("invalid request body"))
	}
	resp, err := h.Service.CreateEntry(c.UserContext(), user.ID, in)
	if err != nil {
		return fiberError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

func (h *JournalHandler) CreateEntryGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	var in model.JournalEntryCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorGin(c, newBadRequest("invalid request body"))
		return
	}
	resp, err := h.Service.CreateEntry(c.Request.Context(), user.ID, in)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// @Summary List journal entries
// @Tags Journal
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Entries to skip"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {array} model.JournalEntry
// @Router /journal [get]
func (h *JournalHandler) ListEntriesFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	skip, limit, err := parsePage(c.Query("skip"), c.Query("limit"))
	if err != nil {
		return fiberError(c, err)
	}
	entries, err := h.Service.ListEntries(c.UserContext(), user.ID, skip, limit)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(entries)
}

func (h *JournalHandler) ListEntriesGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	skip, limit, err := parsePage(c.Query("skip"), c.Query("limit"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	entries, err := h.Service.ListEntries(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// @Summary Get a journal entry
// @Tags Journal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} model.JournalEntry
// @Failure 404 {object} model.ErrorResponse
// @Router /journal/{id} [get]
func (h *JournalHandler) GetEntryFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return fiberError(c, err)
	}
	entry, err := h.Service.GetEntry(c.UserContext(), user.ID, id)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(entry)
}

func (h *JournalHandler) GetEntryGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	entry, err := h.Service.GetEntry(c.Request.Context(), user.ID, id)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// @Summary Analysis status of an entry
// @Tags Journal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} model.EntryStatus
// @Failure 404 {object} model.ErrorResponse
// @Router /journal/{id}/status [get]
func (h *JournalHandler) GetStatusFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return fiberError(c, err)
	}
	status, err := h.Service.GetStatus(c.UserContext(), user.ID, id)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(status)
}

func (h *JournalHandler) GetStatusGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	status, err := h.Service.GetStatus(c.Request.Context(), user.ID, id)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary Delete a journal entry
// @Description Articles generated from the entry are kept.
// @Tags Journal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} model.MessageResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /journal/{id} [delete]
func (h *JournalHandler) DeleteEntryFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return fiberError(c, err)
	}
	if err := h.Service.DeleteEntry(c.UserContext(), user.ID, id); err != nil {
		return fiberError(c, err)
	}
	return c.JSON(model.MessageResponse{Message: "Journal entry deleted successfully"})
}

func (h *JournalHandler) DeleteEntryGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	if err := h.Service.DeleteEntry(c.Request.Context(), user.ID, id); err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Journal entry deleted successfully"})
}

// @Summary Suggest a journaling prompt
// @Tags Journal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.JournalPrompt
// @Router /journal/prompt [get]
func (h *JournalHandler) PromptFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	return c.JSON(model.JournalPrompt{Prompt: h.Prompts.PromptForUser(c.UserContext(), user.ID)})
}

func (h *JournalHandler) PromptGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, model.JournalPrompt{Prompt: h.Prompts.PromptForUser(c.Request.Context(), user.ID)})
}

func insightDays(moodRaw, themesRaw string) (int, int, error) {
	daysMood, err := parseIntQuery("days_mood", moodRaw, service.DefaultInsightDays)
	if err != nil {
		return 0, 0, err
	}
	daysThemes, err := parseIntQuery("days_themes", themesRaw, service.DefaultInsightDays)
	if err != nil {
		return 0, 0, err
	}
	return daysMood, daysThemes, nil
}

// @Summary Mood history and theme cloud
// @Tags Journal
// @Produce json
// @Security BearerAuth
// @Param days_mood query int false "Mood history window in days (1-90)"
// @Param days_themes query int false "Theme cloud window in days (1-90)"
// @Success 200 {object} model.HistoricalInsights
// @Failure 422 {object} model.ErrorResponse
// @Router /journal/insights [get]
func (h *JournalHandler) InsightsFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	daysMood, daysThemes, err := insightDays(c.Query("days_mood"), c.Query("days_themes"))
	if err != nil {
		return fiberError(c, err)
	}
	insights, err := h.Insights.GetInsights(c.UserContext(), user.ID, daysMood, daysThemes)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(insights)
}

func (h *JournalHandler) InsightsGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	daysMood, daysThemes, err := insightDays(c.Query("days_mood"), c.Query("days_themes"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	insights, err := h.Insights.GetInsights(c.Request.Context(), user.ID, daysMood, daysThemes)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
