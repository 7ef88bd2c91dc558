package service

import (
	"context"
	"fmt"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/entity"
	"baristabox-be/internal/repository/contract"
	"baristabox-be/internal/repository/specification"
	"baristabox-be/pkg/store"

	"github.com/google/uuid"
)

// ITranscriptService keeps a durable copy of every conversation in
// Postgres. Live state stays in the session store.
type ITranscriptService interface {
	Open(ctx context.Context, sess *store.Session) error
	Record(ctx context.Context, sess *store.Session, messages ...store.Message) error
	Remove(ctx context.Context, sessionId string) error
	History(ctx context.Context, sessionId string, page, limit int) (*dto.TranscriptResponse, error)
}

type transcriptService struct {
	sessionRepo contract.ChatSessionRepository
	messageRepo contract.ChatMessageRepository
}

func NewTranscriptService(sessionRepo contract.ChatSessionRepository, messageRepo contract.ChatMessageRepository) ITranscriptService {
	return &transcriptService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
	}
}

func (s *transcriptService) Open(ctx context.Context, sess *store.Session) error {
	id, err := uuid.Parse(sess.ID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", sess.ID, err)
	}
	if err := s.sessionRepo.Create(ctx, &entity.ChatSession{
		Id:        id,
		Mode:      sess.Mode,
		CreatedAt: sess.CreatedAt,
	}); err != nil {
		return err
	}
	return s.insert(ctx, id, sess, sess.History...)
}

func (s *transcriptService) Record(ctx context.Context, sess *store.Session, messages ...store.Message) error {
	id, err := uuid.Parse(sess.ID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", sess.ID, err)
	}
	updatedAt := sess.UpdatedAt
	if err := s.sessionRepo.Update(ctx, &entity.ChatSession{
		Id:        id,
		Mode:      sess.Mode,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: &updatedAt,
	}); err != nil {
		return err
	}
	return s.insert(ctx, id, sess, messages...)
}

func (s *transcriptService) insert(ctx context.Context, id uuid.UUID, sess *store.Session, messages ...store.Message) error {
	for _, msg := range messages {
		metadata := map[string]interface{}{"mode": sess.Mode}
		if sess.Diagnosis != nil {
			metadata["stage"] = string(sess.Diagnosis.Stage)
			metadata["problem"] = sess.Diagnosis.Problem
		}
		if err := s.messageRepo.Create(ctx, &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: id,
			Role:          msg.Role,
			Chat:          msg.Content,
			Flow:          msg.Flow,
			Metadata:      metadata,
			CreatedAt:     msg.CreatedAt,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *transcriptService) Remove(ctx context.Context, sessionId string) error {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", sessionId, err)
	}
	if err := s.messageRepo.DeleteByChatSessionId(ctx, id); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, id)
}

// History pages through a stored conversation, oldest message first.
func (s *transcriptService) History(ctx context.Context, sessionId string, page, limit int) (*dto.TranscriptResponse, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, entity.ErrSessionNotFound
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	sess, err := s.sessionRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, entity.ErrSessionNotFound
	}

	messages, err := s.messageRepo.FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: id},
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.TranscriptResponse{
		ChatSessionId: sess.Id.String(),
		Mode:          sess.Mode,
		CreatedAt:     sess.CreatedAt,
		UpdatedAt:     sess.UpdatedAt,
		Messages:      make([]*dto.TranscriptMessage, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, &dto.TranscriptMessage{
			Role:      m.Role,
			Chat:      m.Chat,
			Flow:      m.Flow,
			Metadata:  m.Metadata,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}
