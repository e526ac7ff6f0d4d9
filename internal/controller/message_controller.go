package controller

import (
	"net/http"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const defaultMessageLimit = 100

type MessageController struct {
	MessageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

// Send godoc
// @Summary Send a direct message
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SendMessageInput true "Recipient and content"
// @Success 201 {object} util.Response{data=model.Message}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Recipient not found"
// @Router /api/messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	var req service.SendMessageInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.MessageService.Send(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}

// Conversations godoc
// @Summary List conversations
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.Conversation}
// @Router /api/messages [get]
func (c *MessageController) Conversations(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	convs, err := c.MessageService.Conversations(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, convs)
}

// Read godoc
// @Summary Read a conversation
// @Description Returns the latest messages with the peer, oldest first, and marks the peer's messages read.
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Peer user ID"
// @Param limit query int false "Maximum messages" default(100)
// @Success 200 {object} util.Response{data=[]model.Message}
// @Router /api/messages/{userId} [get]
func (c *MessageController) Read(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	peerID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultMessageLimit)))
	if err != nil || limit < 1 {
		limit = defaultMessageLimit
	}

	msgs, err := c.MessageService.Read(id, peerID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

// Stream godoc
// @Summary Live message events over websocket
// @Description Pushes MESSAGE, MESSAGE_READ and TYPING events. Browsers pass the token as ?token=.
// @Tags Messages
// @Security BearerAuth
// @Param token query string false "JWT when the Authorization header cannot be set"
// @Success 101 "Switching Protocols"
// @Router /api/messages/stream [get]
func (c *MessageController) Stream(ctx *gin.Context) {
	id, ok := identity(ctx)
	if !ok {
		return
	}
	if c.MessageService.Hub == nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Live messaging unavailable")
		return
	}
	c.MessageService.Hub.ServeWs(ctx.Writer, ctx.Request, id.UserID)
}
