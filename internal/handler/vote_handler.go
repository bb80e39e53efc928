package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pollpulse/internal/services"
	"pollpulse/internal/transport/httpdto"
	"pollpulse/pkg/logger"
)

type VoteHandler struct {
	voting   *services.VotingService
	results  *services.ResultsService
	identity *services.IdentityResolver
	log      *logger.Logger
}

func NewVoteHandler(voting *services.VotingService, results *services.ResultsService, identity *services.IdentityResolver, log *logger.Logger) *VoteHandler {
	return &VoteHandler{voting: voting, results: results, identity: identity, log: log}
}

// CastVote handles POST /polls/:id/vote. Open to anonymous voters;
// identity comes from the token when present, the hashed client
// address otherwise.
func (h *VoteHandler) CastVote(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "VALIDATION_ERROR"))
		return
	}

	var req httpdto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid option id", "VALIDATION_ERROR"))
		return
	}

	voterID := h.identity.ResolveVoter(c.Request.Context(), c.ClientIP())

	v, err := h.voting.CastVote(c.Request.Context(), pollID, optionID, voterID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.VoteResponse{
		Message:  "Vote recorded successfully",
		PollID:   v.PollID.String(),
		OptionID: v.OptionID.String(),
	}))
}

// Results handles GET /polls/:id/results. Always 200 for existing
// polls; inactive and expired polls stay viewable.
func (h *VoteHandler) Results(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "VALIDATION_ERROR"))
		return
	}

	res, err := h.results.Results(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromResults(res)))
}
