package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pollpulse/internal/services"
	"pollpulse/internal/transport/httpdto"
	"pollpulse/pkg/logger"
)

type PollHandler struct {
	service *services.PollService
	log     *logger.Logger
}

func NewPollHandler(service *services.PollService, log *logger.Logger) *PollHandler {
	return &PollHandler{service: service, log: log}
}

func (h *PollHandler) Create(c *gin.Context) {
	var req httpdto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	p, err := h.service.Create(c.Request.Context(), uuid.NullUUID{UUID: userID, Valid: true}, services.CreatePollInput{
		Title:              req.Title,
		Description:        req.Description,
		AllowMultipleVotes: req.AllowMultipleVotes,
		ExpiresAt:          req.ExpiresAt,
		Options:            req.Options,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromPoll(p)))
}

func (h *PollHandler) List(c *gin.Context) {
	// Default to active polls only; ?is_active=false lists the rest.
	active := new(bool)
	*active = true
	if raw, exists := c.GetQuery("is_active"); exists {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid is_active filter", "VALIDATION_ERROR"))
			return
		}
		*active = parsed
	}

	polls, err := h.service.List(c.Request.Context(), active)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListPollsResponse{
		Polls: httpdto.FromPollSlice(polls),
		Total: len(polls),
	}))
}

func (h *PollHandler) GetByID(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "VALIDATION_ERROR"))
		return
	}

	p, err := h.service.Get(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromPoll(p)))
}

func (h *PollHandler) Update(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "VALIDATION_ERROR"))
		return
	}

	var req httpdto.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, pollID, services.UpdatePollInput{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromPoll(p)))
}

func (h *PollHandler) Delete(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "VALIDATION_ERROR"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, pollID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
