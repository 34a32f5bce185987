package conversation

const (
	// maxWindowSize counts the system entry plus messageHistorySize others.
	maxWindowSize      = 21
	messageHistorySize = maxWindowSize - 1
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Window is the bounded message history sent to the chat provider. A system
// entry, when present, is always at index 0.
type Window struct {
	messages []Message
}

func (w *Window) SyncSystemPrompt(prompt string) {
	msg := Message{
		Role:    RoleSystem,
		Content: prompt,
	}

	if len(w.messages) > 0 && w.messages[0].Role == RoleSystem {
		w.messages[0] = msg
		return
	}

	w.messages = append([]Message{msg}, w.messages...)
}

func (w *Window) Append(role Role, text string) {
	w.messages = append(w.messages, Message{
		Role:    role,
		Content: text,
	})
}

// Truncate keeps the leading entry plus the newest messageHistorySize entries
// once the window grows past maxWindowSize.
func (w *Window) Truncate() {
	if len(w.messages) <= maxWindowSize {
		return
	}

	tail := w.messages[len(w.messages)-messageHistorySize:]

	kept := make([]Message, 0, maxWindowSize)
	kept = append(kept, w.messages[0])
	kept = append(kept, tail...)

	w.messages = kept
}

func (w *Window) Messages() []Message {
	result := make([]Message, len(w.messages))
	copy(result, w.messages)

	return result
}

func (w *Window) Len() int {
	return len(w.messages)
}

func (w *Window) Clear() {
	w.messages = nil
}

func (w *Window) restore(messages []Message) {
	w.messages = messages
}
