package insight

import (
	"context"
	"sync"
)

// --- Fake Generator ---

type fakeGenerator struct {
	mu sync.Mutex

	Reply   string
	Err     error
	Replies []string // consumed in order by conversations, overrides Reply

	ConversationErr error
	SendErrs        []error // consumed in order by conversations

	lastPrompt      string
	lastParams      *Params
	generateCalls   int
	createdConvs    int
	lastInstruction string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, params *Params) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generateCalls++
	f.lastPrompt = prompt
	f.lastParams = params
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *fakeGenerator) NewConversation(ctx context.Context, instruction string) (Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInstruction = instruction
	if f.ConversationErr != nil {
		return nil, f.ConversationErr
	}
	f.createdConvs++
	return &fakeConversation{gen: f, id: f.createdConvs}, nil
}

type fakeConversation struct {
	gen  *fakeGenerator
	id   int
	sent []string
}

func (c *fakeConversation) Send(ctx context.Context, message string) (string, error) {
	f := c.gen
	f.mu.Lock()
	defer f.mu.Unlock()
	c.sent = append(c.sent, message)
	if len(f.SendErrs) > 0 {
		err := f.SendErrs[0]
		f.SendErrs = f.SendErrs[1:]
		if err != nil {
			return "", err
		}
	}
	if len(f.Replies) > 0 {
		r := f.Replies[0]
		f.Replies = f.Replies[1:]
		return r, nil
	}
	return f.Reply, nil
}
