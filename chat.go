package main

// Role identifies who produced a transcript message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleThinking
)

// Message is a single transcript entry. IsMarkup marks assistant replies
// that should be rendered as markdown rather than printed literally.
type Message struct {
	Role     Role
	Content  string
	IsMarkup bool
}

// Transcript is the append-only ordered record of the conversation. It is
// owned by the session; the only mutations are Append and Pop, the latter
// used to drop the transient thinking entry once a real reply arrives.
type Transcript struct {
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// Pop removes and returns the most recent message.
func (t *Transcript) Pop() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	last := t.messages[len(t.messages)-1]
	t.messages = t.messages[:len(t.messages)-1]
	return last, true
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns the entries in order. Callers must not mutate them.
func (t *Transcript) Messages() []Message {
	return t.messages
}
