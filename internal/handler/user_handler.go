package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/mindful-journal/internal/middleware"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

// UserHandler serves registration, login and the caller's own account.
type UserHandler struct {
	Service service.UserServiceInterface
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserServiceInterface) *UserHandler {
	return &UserHandler{Service: svc}
}

func credentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", "", newBadRequest("username and password are required")
	}
	return username, password, nil
}

// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body model.UserCreate true "New account"
// @Success 201 {object} model.User
// @Failure 409 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Router /users [post]
func (h *UserHandler) RegisterFiber(c *fiber.Ctx) error {
	var in model.UserCreate
	if err := c.BodyParser(&in); err != nil {
		return fiberError(c, newBadRequest("invalid request body"))
	}
	user, err := h.Service.Register(c.UserContext(), in)
	if err != nil {
		return fiberError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) RegisterGin(c *gin.Context) {
	var in model.UserCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorGin(c, newBadRequest("invalid request body"))
		return
	}
	user, err := h.Service.Register(c.Request.Context(), in)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary Log in
// @Description OAuth2 password flow. The username field carries the email.
// @Tags Users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} model.Token
// @Failure 401 {object} model.ErrorResponse
// @Router /users/token [post]
func (h *UserHandler) TokenFiber(c *fiber.Ctx) error {
	username, password, err := credentials(c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return fiberError(c, err)
	}
	token, err := h.Service.Login(c.UserContext(), username, password)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(token)
}

func (h *UserHandler) TokenGin(c *gin.Context) {
	username, password, err := credentials(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	token, err := h.Service.Login(c.Request.Context(), username, password)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// @Summary Current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /users/me [get]
func (h *UserHandler) MeFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	return c.JSON(user)
}

func (h *UserHandler) MeGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Export all data of the current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserDataExport
// @Router /users/me/export [get]
func (h *UserHandler) ExportFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	export, err := h.Service.Export(c.UserContext(), user.ID)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(export)
}

func (h *UserHandler) ExportGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	export, err := h.Service.Export(c.Request.Context(), user.ID)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}

// @Summary Delete the current user
// @Description Removes the account together with its journal entries and articles.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserDeleteResponse
// @Router /users/me [delete]
func (h *UserHandler) DeleteFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	resp, err := h.Service.Delete(c.UserContext(), user.ID)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) DeleteGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	resp, err := h.Service.Delete(c.Request.Context(), user.ID)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
