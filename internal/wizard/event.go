// Package wizard is the conversation state machine behind every front-end.
// Front-ends turn user input into Events and deliver the returned Replies.
package wizard

// Event is one inbound user action.
type Event interface{ event() }

// Command is a slash command such as "start" or "new", without the slash.
type Command struct {
	Name string
}

// Press is a keyboard button press carrying the button's token.
type Press struct {
	Token string
}

// Text is a typed message.
type Text struct {
	Body string
}

// Voice is a voice note to transcribe.
type Voice struct {
	Audio    []byte
	Filename string
}

func (Command) event() {}
func (Press) event()   {}
func (Text) event()    {}
func (Voice) event()   {}

// Button is one keyboard key. Token comes back in a Press.
type Button struct {
	Label string
	Token string
}

// Document is a file attachment.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
	Caption  string
}

// Reply is one outbound message. Markdown marks text written with chat
// markup; lesson content is sent as plain text.
type Reply struct {
	Text     string
	Markdown bool
	Keyboard [][]Button
	Document *Document
}

// Tokens returns every button token in the keyboard.
func (r Reply) Tokens() []string {
	var out []string
	for _, row := range r.Keyboard {
		for _, b := range row {
			out = append(out, b.Token)
		}
	}
	return out
}

// rows lays buttons out n per row.
func rows(n int, buttons ...Button) [][]Button {
	var out [][]Button
	for len(buttons) > 0 {
		k := min(n, len(buttons))
		out = append(out, buttons[:k])
		buttons = buttons[k:]
	}
	return out
}
