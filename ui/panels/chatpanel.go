package panels

import (
	"context"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"medview/internal/app"
	"medview/internal/assistant"
)

const chatPlaceholder = "Ask about this study's findings, measurements, or report."

// ChatPanel hosts the report-assistant conversation for the loaded study.
type ChatPanel struct {
	state     *app.State
	responder *assistant.Responder

	// mu guards history and generation: the UI thread and reply goroutines
	// both touch them.
	mu         sync.Mutex
	history    []assistant.Message
	generation int

	transcript *widget.Label
	entry      *widget.Entry
	container  *fyne.Container
}

// NewChatPanel creates the assistant chat panel.
func NewChatPanel(state *app.State, responder *assistant.Responder) *ChatPanel {
	cp := &ChatPanel{
		state:      state,
		responder:  responder,
		transcript: widget.NewLabel(chatPlaceholder),
	}
	cp.transcript.Wrapping = fyne.TextWrapWord

	cp.entry = widget.NewEntry()
	cp.entry.SetPlaceHolder("Ask the assistant...")
	cp.entry.OnSubmitted = func(text string) { cp.send(text) }

	sendBtn := widget.NewButton("Send", func() { cp.send(cp.entry.Text) })

	// The assistant forgets the conversation when the study changes; bumping
	// the generation makes any in-flight reply land in the void.
	state.On(app.EventStudyLoaded, func(interface{}) {
		cp.mu.Lock()
		cp.generation++
		cp.history = nil
		cp.mu.Unlock()
		cp.transcript.SetText(chatPlaceholder)
	})

	cp.container = container.NewBorder(
		widget.NewLabelWithStyle("Assistant", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, sendBtn, cp.entry),
		nil, nil,
		container.NewVScroll(cp.transcript),
	)
	return cp
}

// send submits a user message and appends the reply asynchronously. A reply
// arriving after the study has changed is dropped, not resurrected into the
// new study's transcript.
func (cp *ChatPanel) send(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	cp.entry.SetText("")

	cp.mu.Lock()
	cp.history = append(cp.history, assistant.Message{Role: "user", Content: text})
	gen := cp.generation
	messages := make([]assistant.Message, len(cp.history))
	copy(messages, cp.history)
	cp.mu.Unlock()

	cp.renderTranscript()

	req := assistant.Request{
		Messages: messages,
		Context:  cp.reportContext(),
	}

	go func() {
		resp := cp.responder.Reply(context.Background(), req)

		cp.mu.Lock()
		if cp.generation != gen {
			cp.mu.Unlock()
			return
		}
		cp.history = append(cp.history, assistant.Message{Role: resp.Role, Content: resp.Content})
		cp.mu.Unlock()

		cp.renderTranscript()
	}()
}

// reportContext flattens the loaded report into the assistant context.
func (cp *ChatPanel) reportContext() assistant.Context {
	rep := cp.state.Report()
	if rep == nil {
		return assistant.Context{}
	}
	return assistant.Context{
		Overview:       rep.Overview,
		Findings:       rep.FindingLabels(),
		Measurements:   assistant.MeasurementData{Data: rep.Measurements()},
		PatientSupport: rep.PatientSupport,
	}
}

func (cp *ChatPanel) renderTranscript() {
	cp.mu.Lock()
	var b strings.Builder
	for _, m := range cp.history {
		switch m.Role {
		case "user":
			b.WriteString("You: ")
		default:
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	cp.mu.Unlock()

	cp.transcript.SetText(b.String())
}

// Container returns the panel container.
func (cp *ChatPanel) Container() fyne.CanvasObject {
	return cp.container
}
