package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/travelmada/internal/model"
)

// ErrInvalidContact is wrapped by validation failures of the contact form.
var ErrInvalidContact = errors.New("contact message is invalid")

const maxInboxMessages = 200

// ContactInput is the submitted contact form.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactService keeps contact form submissions in an in-memory inbox.
type ContactService struct {
	mu       sync.RWMutex
	messages []model.ContactMessage
	validate *validator.Validate
	now      func() time.Time
}

// NewContactService creates an empty inbox.
func NewContactService(validate *validator.Validate) *ContactService {
	if validate == nil {
		validate = NewValidator()
	}
	return &ContactService{validate: validate, now: time.Now}
}

// Submit validates input and stores it at the head of the inbox. The oldest
// messages are dropped once the inbox is full.
func (s *ContactService) Submit(input ContactInput) (model.ContactMessage, error) {
	msg := model.ContactMessage{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Message:    strings.TrimSpace(input.Message),
		ReceivedAt: s.now(),
	}
	if err := validateStruct(s.validate, msg, ErrInvalidContact); err != nil {
		return model.ContactMessage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]model.ContactMessage{msg}, s.messages...)
	if len(s.messages) > maxInboxMessages {
		s.messages = s.messages[:maxInboxMessages]
	}
	return msg, nil
}

// Recent returns up to n messages, newest first.
func (s *ContactService) Recent(n int) []model.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n < 0 || n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]model.ContactMessage, n)
	copy(out, s.messages[:n])
	return out
}

// Count returns the number of stored messages.
func (s *ContactService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
