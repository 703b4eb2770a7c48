package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

const (
	messagesDefaultLimit = 20
	messagesMaxLimit     = 50
)

type ConversationController struct {
	Conversations *services.ConversationService
}

func NewConversationController(conversations *services.ConversationService) *ConversationController {
	return &ConversationController{Conversations: conversations}
}

// CreateConversation answers 200 when the participants already share one.
func (cc *ConversationController) CreateConversation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.ConversationInput
	if !bindJSON(c, &body) {
		return
	}
	conversation, created, err := cc.Conversations.Create(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !created {
		utils.RespondJSON(c, http.StatusOK, "Conversation already exists", conversation)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Conversation created", conversation)
}

// GetMyConversations
func (cc *ConversationController) GetMyConversations(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	conversations, err := cc.Conversations.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My conversations", conversations)
}

// GetConversationByID
func (cc *ConversationController) GetConversationByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conversation, err := cc.Conversations.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Conversation detail", conversation)
}

// SendMessage
func (cc *ConversationController) SendMessage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	message, err := cc.Conversations.Send(c.Request.Context(), actor, id, body.Content)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Message sent", message)
}

// GetMessages
func (cc *ConversationController) GetMessages(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err := utils.ParsePage(c, messagesDefaultLimit, messagesMaxLimit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	messages, err := cc.Conversations.Messages(c.Request.Context(), actor, id, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Messages", messages)
}

// MarkMessageRead
func (cc *ConversationController) MarkMessageRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	message, err := cc.Conversations.MarkRead(c.Request.Context(), actor, id, messageID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Message marked as read", message)
}
