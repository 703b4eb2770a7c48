package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

const (
	maxParticipants = 20
	// EventMessage is pushed to the other participants when a message is
	// sent.
	EventMessage = "message"
)

// ConversationService keeps message threads. Only participants can read a
// conversation or write to it.
type ConversationService struct {
	db         *gorm.DB
	dispatcher *Dispatcher
}

func NewConversationService(db *gorm.DB, dispatcher *Dispatcher) *ConversationService {
	return &ConversationService{db: db, dispatcher: dispatcher}
}

type ConversationInput struct {
	ParticipantIDs []uint `json:"participant_ids"`
	JobID          *uint  `json:"job_id"`
}

type MessagePage struct {
	Items []models.Message `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// participantKey returns the sorted, de-duplicated ids joined by commas.
func participantKey(ids []uint) ([]uint, string) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	parts := make([]string, len(unique))
	for i, id := range unique {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return unique, strings.Join(parts, ",")
}

// Create starts a conversation between the actor and the given users, or
// returns the one those users already share. created is false in that case.
func (s *ConversationService) Create(ctx context.Context, actor authz.Identity, in ConversationInput) (conv *models.Conversation, created bool, err error) {
	ids, key := participantKey(append(in.ParticipantIDs, actor.UserID))
	if len(ids) < 2 {
		return nil, false, utils.BadRequest("a conversation needs at least one other participant")
	}
	if len(ids) > maxParticipants {
		return nil, false, utils.BadRequest("a conversation can have at most %d participants", maxParticipants)
	}

	if existing, err := s.findByKey(ctx, key); err == nil {
		return existing, false, nil
	} else if !utils.IsKind(err, utils.KindNotFound) {
		return nil, false, err
	}

	var users int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Count(&users).Error; err != nil {
		return nil, false, utils.Internal("failed to check participants", err)
	}
	if int(users) != len(ids) {
		return nil, false, utils.NotFound("participant not found")
	}
	if in.JobID != nil {
		var job models.Job
		if err := s.db.WithContext(ctx).Select("id").First(&job, *in.JobID).Error; err != nil {
			return nil, false, lookupError(err, "job not found")
		}
	}

	conversation := models.Conversation{JobID: in.JobID, ParticipantKey: key}
	for _, id := range ids {
		conversation.Participants = append(conversation.Participants, models.ConversationParticipant{UserID: id})
	}
	if err := s.db.WithContext(ctx).Create(&conversation).Error; err != nil {
		if isUniqueViolation(err) {
			existing, err := s.findByKey(ctx, key)
			return existing, false, err
		}
		return nil, false, utils.Internal("failed to create conversation", err)
	}
	return &conversation, true, nil
}

func (s *ConversationService) findByKey(ctx context.Context, key string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.db.WithContext(ctx).Preload("Participants").Where("participant_key = ?", key).First(&conversation).Error
	if err != nil {
		return nil, lookupError(err, "conversation not found")
	}
	return &conversation, nil
}

// ListMine returns the actor's conversations, most recently active first.
func (s *ConversationService) ListMine(ctx context.Context, actor authz.Identity) ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	err := s.db.WithContext(ctx).Preload("Participants").
		Where("id IN (?)", s.db.Model(&models.ConversationParticipant{}).Select("conversation_id").Where("user_id = ?", actor.UserID)).
		Order("updated_at DESC").Order("id DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, utils.Internal("failed to list conversations", err)
	}
	return conversations, nil
}

// Get returns a conversation the actor takes part in.
func (s *ConversationService) Get(ctx context.Context, actor authz.Identity, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.WithContext(ctx).Preload("Participants").First(&conversation, id).Error; err != nil {
		return nil, lookupError(err, "conversation not found")
	}
	if !conversation.HasParticipant(actor.UserID) {
		return nil, utils.Forbidden(utils.DenialOwnership, "you are not a participant in this conversation")
	}
	return &conversation, nil
}

// Send stores a message and pushes it to the other participants.
func (s *ConversationService) Send(ctx context.Context, actor authz.Identity, conversationID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.BadRequest("message content is required")
	}
	conversation, err := s.Get(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}

	message := models.Message{ConversationID: conversation.ID, SenderID: actor.UserID, Content: content}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(conversation).Update("updated_at", message.CreatedAt).Error
	})
	if err != nil {
		return nil, utils.Internal("failed to send message", err)
	}

	effects := make([]Effect, 0, len(conversation.Participants))
	for _, p := range conversation.Participants {
		if p.UserID != actor.UserID {
			effects = append(effects, PushEffect{UserID: p.UserID, Event: EventMessage, Data: message})
		}
	}
	s.dispatcher.Dispatch(ctx, effects...)
	return &message, nil
}

// Messages pages through a conversation from the newest message back. Each
// page is returned oldest first.
func (s *ConversationService) Messages(ctx context.Context, actor authz.Identity, conversationID uint, page utils.Page) (*MessagePage, error) {
	if _, err := s.Get(ctx, actor, conversationID); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, utils.Internal("failed to count messages", err)
	}

	items := []models.Message{}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit).Find(&items).Error; err != nil {
		return nil, utils.Internal("failed to list messages", err)
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return &MessagePage{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// MarkRead flags a message of the conversation as read.
func (s *ConversationService) MarkRead(ctx context.Context, actor authz.Identity, conversationID, messageID uint) (*models.Message, error) {
	if _, err := s.Get(ctx, actor, conversationID); err != nil {
		return nil, err
	}
	var message models.Message
	err := s.db.WithContext(ctx).Where("conversation_id = ?", conversationID).First(&message, messageID).Error
	if err != nil {
		return nil, lookupError(err, "message not found")
	}
	if !message.Read {
		if err := s.db.WithContext(ctx).Model(&message).Update("is_read", true).Error; err != nil {
			return nil, utils.Internal("failed to mark message as read", err)
		}
		message.Read = true
	}
	return &message, nil
}
