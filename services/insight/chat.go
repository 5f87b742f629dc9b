package insight

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	ChatGreeting    = "CONNECTION_ESTABLISHED. SYSTEM_INTELLIGENCE ONLINE. HOW CAN I ASSIST YOUR OPERATIVE?"
	ChatEmptyReply  = "TRANSMISSION_ERROR"
	ChatFailed      = "CRITICAL_UPLINK_FAILURE: RECONNECTING..."
	chatInstruction = "You are SYSTEM_INTELLIGENCE, the resident AI of NEON-X, a high-tech cyberpunk store. Talk like a terse netrunner, keep answers under three sentences and help operatives pick gear from the store."
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message is one transcript entry.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ErrChatBusy is returned when a message is sent while another one is in flight.
var ErrChatBusy = errors.New("chat reply in progress")

var errOffline = errors.New("no generative backend configured")

// ChatSession owns one conversation handle and its transcript. The handle is
// created on first use and dropped after a failed send.
type ChatSession struct {
	gen Generator
	log logrus.FieldLogger

	mu         sync.Mutex
	conv       Conversation
	transcript []Message
	sending    bool
}

// NewChat starts a transcript with the opening system line. No backend call
// is made until the first Send.
func (c *Client) NewChat() *ChatSession {
	return &ChatSession{
		gen:        c.gen,
		log:        c.log.WithField("widget", "chat"),
		transcript: []Message{{Role: RoleAI, Text: ChatGreeting}},
	}
}

// Transcript returns a copy of the messages so far.
func (s *ChatSession) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Pending reports whether a reply is outstanding.
func (s *ChatSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Connected reports whether a conversation handle is currently held.
func (s *ChatSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv != nil
}

func (s *ChatSession) snapshot() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Send appends message and the reply to the transcript and returns it. Blank
// messages are ignored. Backend failures are recorded as ChatFailed; the
// only error returned is ErrChatBusy.
func (s *ChatSession) Send(ctx context.Context, message string) ([]Message, error) {
	text := strings.TrimSpace(message)

	s.mu.Lock()
	if text == "" {
		defer s.mu.Unlock()
		return s.snapshot(), nil
	}
	if s.sending {
		s.mu.Unlock()
		return nil, ErrChatBusy
	}
	s.sending = true
	s.transcript = append(s.transcript, Message{Role: RoleUser, Text: text})
	conv := s.conv
	s.mu.Unlock()

	reply, conv, err := s.exchange(ctx, conv, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	if err != nil {
		s.log.WithError(err).Warn("chat send failed")
		s.conv = nil
		s.transcript = append(s.transcript, Message{Role: RoleAI, Text: ChatFailed})
		return s.snapshot(), nil
	}
	s.conv = conv
	if strings.TrimSpace(reply) == "" {
		reply = ChatEmptyReply
	}
	s.transcript = append(s.transcript, Message{Role: RoleAI, Text: reply})
	return s.snapshot(), nil
}

func (s *ChatSession) exchange(ctx context.Context, conv Conversation, text string) (string, Conversation, error) {
	if conv == nil {
		if s.gen == nil {
			return "", nil, errOffline
		}
		created, err := s.gen.NewConversation(ctx, chatInstruction)
		if err != nil {
			return "", nil, err
		}
		conv = created
	}
	reply, err := conv.Send(ctx, text)
	if err != nil {
		return "", nil, err
	}
	return reply, conv, nil
}
