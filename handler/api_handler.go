package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/chatpdf/types"
)

// APIHandler exposes the session as JSON under /api/v1.
type APIHandler struct {
	session SessionService
}

func NewAPIHandler(session SessionService) *APIHandler {
	return &APIHandler{session: session}
}

func (h *APIHandler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.StatusResponse{
			State:           h.session.State().String(),
			QuestionEnabled: h.session.QuestionEnabled(),
		},
	})
}

func (h *APIHandler) HandleProcess(c *gin.Context) {
	files, err := uploadedPDFs(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, ProcessErrorMessage(err))
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusOK, types.DataResponse{
			Status:  true,
			Message: MsgNoFiles,
			Data:    types.ProcessResponse{},
		})
		return
	}

	res, err := h.session.Process(c.Request.Context(), files)
	if err != nil {
		sendError(c, statusFor(err), ProcessErrorMessage(err))
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: MsgDone,
		Data:    res,
	})
}

func (h *APIHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		sendError(c, http.StatusBadRequest, "question is required")
		return
	}

	res, err := h.session.Ask(c.Request.Context(), req.Question)
	if err != nil {
		sendError(c, statusFor(err), AskErrorMessage(err))
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: "Reply: " + res.Reply,
		Data:    res,
	})
}

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, types.DataResponse{
		Status:  false,
		Message: message,
	})
}
