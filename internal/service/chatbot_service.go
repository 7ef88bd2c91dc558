package service

import (
	"context"
	"sync"
	"time"

	"baristabox-be/internal/constant"
	"baristabox-be/internal/dto"
	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/pkg/classifier"
	"baristabox-be/pkg/doctor"
	"baristabox-be/pkg/store"

	"github.com/google/uuid"
)

const chatbotModule = "ChatbotService"

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
}

// Diagnostician is the troubleshooting flow.
type Diagnostician interface {
	Start(ctx context.Context, problem, rawQuery string) doctor.Reply
	Step(ctx context.Context, state doctor.State, userText string) doctor.Reply
}

type Recommender interface {
	GetRecommendation(ctx context.Context, query string) string
}

type RecipeGuide interface {
	GetRecipe(ctx context.Context, query string) string
}

type TurnObserver interface {
	ObserveChatTurn(flow, outcome string)
}

// ChatFlows bundles the classifiers and expert flows a turn may be routed to.
type ChatFlows struct {
	Intents   classifier.Classifier
	Problems  classifier.Classifier
	Doctor    Diagnostician
	Sommelier Recommender
	Brewer    RecipeGuide
}

type chatbotService struct {
	sessions   store.Repository
	flows      ChatFlows
	transcript ITranscriptService
	observer   TurnObserver
	logger     logger.ILogger

	locks sessionLocks
}

// sessionLocks serializes turns per session id. An entry exists only while
// some caller holds or waits on it.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*sessionLock)
	}
	entry, ok := l.entries[id]
	if !ok {
		entry = &sessionLock{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// NewChatbotService wires the orchestrator. transcript and observer may be nil.
func NewChatbotService(
	sessions store.Repository,
	flows ChatFlows,
	transcript ITranscriptService,
	observer TurnObserver,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		sessions:   sessions,
		flows:      flows,
		transcript: transcript,
		observer:   observer,
		logger:     logger,
	}
}

func (cs *chatbotService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	now := time.Now()
	sess := store.NewSession(uuid.NewString(), now)
	sess.Append(constant.ChatMessageRoleAssistant, constant.ChatGreeting, constant.FlowGreeting, now)

	if err := cs.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	if cs.transcript != nil {
		if err := cs.transcript.Open(ctx, sess); err != nil {
			cs.logger.Warn(chatbotModule, "Failed to open transcript", map[string]interface{}{"session_id": sess.ID, "error": err.Error()})
		}
	}

	cs.logger.Info(chatbotModule, "Session created", map[string]interface{}{"session_id": sess.ID})
	return &dto.CreateSessionResponse{
		Id:       sess.ID,
		Mode:     sess.Mode,
		Greeting: toChatDTO(sess.History[0]),
	}, nil
}

func (cs *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	unlock := cs.locks.acquire(request.ChatSessionId)
	defer unlock()

	sess, ok, err := cs.sessions.Get(ctx, request.ChatSessionId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	sentAt := time.Now()
	sess.Append(constant.ChatMessageRoleUser, request.Chat, "", sentAt)

	turn := cs.route(ctx, sess, request.Chat)

	repliedAt := time.Now()
	sess.Append(constant.ChatMessageRoleAssistant, turn.reply, turn.flow, repliedAt)
	if err := cs.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	sent := sess.History[len(sess.History)-2]
	reply := sess.History[len(sess.History)-1]
	if cs.transcript != nil {
		if err := cs.transcript.Record(ctx, sess, sent, reply); err != nil {
			cs.logger.Warn(chatbotModule, "Failed to record transcript", map[string]interface{}{"session_id": sess.ID, "error": err.Error()})
		}
	}
	if cs.observer != nil {
		cs.observer.ObserveChatTurn(turn.flow, turn.outcome)
	}

	return &dto.SendChatResponse{
		ChatSessionId: sess.ID,
		Mode:          sess.Mode,
		Outcome:       turn.outcome,
		Sent:          toChatDTO(sent),
		Reply:         toChatDTO(reply),
	}, nil
}

type turnResult struct {
	reply   string
	flow    string
	outcome string
}

// route runs one message through the active flow and updates the session
// mode. Classifier failures leave the mode untouched.
func (cs *chatbotService) route(ctx context.Context, sess *store.Session, text string) turnResult {
	if sess.Mode == store.ModeDoctorChat && sess.Diagnosis != nil {
		reply := cs.flows.Doctor.Step(ctx, *sess.Diagnosis, text)
		sess.Diagnose(reply.State)
		return turnResult{reply: reply.Text, flow: constant.FlowDoctor, outcome: string(reply.Outcome)}
	}
	// A doctor_chat session without state has lost its diagnosis.
	sess.Diagnose(nil)

	intent, err := cs.flows.Intents.Classify(ctx, text)
	if err != nil {
		cs.logger.Error(chatbotModule, "Intent classification failed", map[string]interface{}{"session_id": sess.ID, "error": err.Error()})
		return turnResult{reply: constant.ChatApologyReply, flow: constant.FlowUnknown, outcome: "failed"}
	}
	cs.logger.Debug(chatbotModule, "Intent classified", map[string]interface{}{"session_id": sess.ID, "intent": intent})

	switch intent {
	case classifier.IntentTroubleshooting:
		problem, err := cs.flows.Problems.Classify(ctx, text)
		if err != nil {
			cs.logger.Error(chatbotModule, "Problem classification failed", map[string]interface{}{"session_id": sess.ID, "error": err.Error()})
			return turnResult{reply: constant.ChatApologyReply, flow: constant.FlowDoctor, outcome: "failed"}
		}
		reply := cs.flows.Doctor.Start(ctx, problem, text)
		sess.Diagnose(reply.State)
		return turnResult{reply: reply.Text, flow: constant.FlowDoctor, outcome: string(reply.Outcome)}

	case classifier.IntentRecommendation:
		return turnResult{reply: cs.flows.Sommelier.GetRecommendation(ctx, text), flow: constant.FlowSommelier, outcome: "answered"}

	case classifier.IntentRecipe:
		return turnResult{reply: cs.flows.Brewer.GetRecipe(ctx, text), flow: constant.FlowBrewer, outcome: "answered"}
	}

	return turnResult{reply: constant.ChatUnknownIntentReply, flow: constant.FlowUnknown, outcome: "unhandled"}
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	sess, ok, err := cs.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	res := &dto.GetChatHistoryResponse{
		ChatSessionId: sess.ID,
		Mode:          sess.Mode,
		Messages:      make([]*dto.SendChatResponseChat, 0, len(sess.History)),
		CreatedAt:     sess.CreatedAt,
		UpdatedAt:     sess.UpdatedAt,
	}
	if sess.Diagnosis != nil {
		res.Stage = string(sess.Diagnosis.Stage)
	}
	for _, msg := range sess.History {
		res.Messages = append(res.Messages, toChatDTO(msg))
	}
	return res, nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, sessionId string) error {
	unlock := cs.locks.acquire(sessionId)
	defer unlock()

	_, ok, err := cs.sessions.Get(ctx, sessionId)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrSessionNotFound
	}
	if err := cs.sessions.Delete(ctx, sessionId); err != nil {
		return err
	}

	if cs.transcript != nil {
		if err := cs.transcript.Remove(ctx, sessionId); err != nil {
			cs.logger.Warn(chatbotModule, "Failed to remove transcript", map[string]interface{}{"session_id": sessionId, "error": err.Error()})
		}
	}
	return nil
}

func toChatDTO(msg store.Message) *dto.SendChatResponseChat {
	return &dto.SendChatResponseChat{
		Role:      msg.Role,
		Chat:      msg.Content,
		Flow:      msg.Flow,
		CreatedAt: msg.CreatedAt,
	}
}
