package store

import (
	"time"

	"baristabox-be/pkg/doctor"
)

// Message is one line of the conversation transcript.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Flow      string    `json:"flow,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session represents the active conversation state between turns.
type Session struct {
	ID   string `json:"id"`
	Mode string `json:"mode"` // "intent_classifier" | "doctor_chat"

	// Diagnosis is non-nil exactly while Mode is ModeDoctorChat.
	Diagnosis *doctor.State `json:"diagnosis,omitempty"`

	History   []Message `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ModeIntentClassifier = "intent_classifier"
	ModeDoctorChat       = "doctor_chat"
)

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Mode:      ModeIntentClassifier,
		History:   []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Clone() *Session {
	c := *s
	c.History = append([]Message(nil), s.History...)
	if s.Diagnosis != nil {
		d := s.Diagnosis.Clone()
		c.Diagnosis = &d
	}
	return &c
}

func (s *Session) Append(role, content, flow string, at time.Time) {
	s.History = append(s.History, Message{
		Role:      role,
		Content:   content,
		Flow:      flow,
		CreatedAt: at,
	})
	s.UpdatedAt = at
}

// Diagnose switches the session into the doctor flow with the given state,
// or back to intent classification when state is nil.
func (s *Session) Diagnose(state *doctor.State) {
	if state == nil {
		s.Mode = ModeIntentClassifier
		s.Diagnosis = nil
		return
	}
	s.Mode = ModeDoctorChat
	s.Diagnosis = state
}
