package service

import (
	"errors"
	"strings"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type SendMessageInput struct {
	RecipientID uint   `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required,max=4000"`
}

type Peer struct {
	ID        uint   `json:"id"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

type Conversation struct {
	Peer        Peer          `json:"peer"`
	LastMessage model.Message `json:"lastMessage"`
	Unread      int           `json:"unread"`
}

type MessageService struct {
	MessageRepo *repository.MessageRepository
	UserRepo    *repository.UserRepository
	Hub         *MessageHub
}

// NewMessageService takes an optional hub; nil disables live push.
func NewMessageService(messageRepo *repository.MessageRepository, userRepo *repository.UserRepository, hub *MessageHub) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Hub:         hub,
	}
}

func (s *MessageService) push(userID uint, event HubEvent) {
	if s.Hub != nil {
		s.Hub.Notify(userID, event)
	}
}

func (s *MessageService) requireUser(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *MessageService) Send(id util.Identity, in SendMessageInput) (*model.Message, error) {
	if in.RecipientID == id.UserID {
		return nil, util.ErrSelfMessage
	}
	if err := s.requireUser(in.RecipientID); err != nil {
		return nil, err
	}
	msg := &model.Message{
		SenderID:    id.UserID,
		RecipientID: in.RecipientID,
		Content:     strings.TrimSpace(in.Content),
	}
	if err := s.MessageRepo.Create(msg); err != nil {
		return nil, err
	}
	s.push(msg.RecipientID, HubEvent{Type: EventMessage, Data: msg})
	return msg, nil
}

// Conversations lists the caller's peers, most recent exchange first, with
// the last message and the number of unread inbound messages.
func (s *MessageService) Conversations(id util.Identity) ([]Conversation, error) {
	msgs, err := s.MessageRepo.ListForUser(id.UserID)
	if err != nil {
		return nil, err
	}

	index := make(map[uint]int)
	convs := []Conversation{}
	var peerIDs []uint
	for _, m := range msgs {
		peer := m.SenderID
		if peer == id.UserID {
			peer = m.RecipientID
		}
		i, ok := index[peer]
		if !ok {
			i = len(convs)
			index[peer] = i
			convs = append(convs, Conversation{Peer: Peer{ID: peer}, LastMessage: m})
			peerIDs = append(peerIDs, peer)
		}
		if m.RecipientID == id.UserID && m.ReadAt == nil {
			convs[i].Unread++
		}
	}

	users, err := s.UserRepo.FindByIDs(peerIDs)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if i, ok := index[u.ID]; ok {
			convs[i].Peer.FullName = u.FullName
			convs[i].Peer.AvatarURL = u.AvatarURL
		}
	}
	return convs, nil
}

// Read returns the conversation with peerID, oldest first, after marking the
// peer's messages to the caller as read.
func (s *MessageService) Read(id util.Identity, peerID uint, limit int) ([]model.Message, error) {
	if err := s.requireUser(peerID); err != nil {
		return nil, err
	}
	if err := s.MessageRepo.MarkRead(peerID, id.UserID); err != nil {
		return nil, err
	}
	s.push(peerID, HubEvent{Type: EventMessageRead, Data: map[string]uint{"readerId": id.UserID}})
	msgs, err := s.MessageRepo.Between(id.UserID, peerID, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return msgs, nil
}
