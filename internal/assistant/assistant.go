// Package assistant answers report questions in the viewer's chat panel.
// It forwards the conversation to a local inference service when one is
// reachable and otherwise falls back to deterministic rule-based templates.
// Absence of the local service is expected, never surfaced as an error.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Response source tags.
const (
	SourceLocalLLM = "local-llm"
	SourceEmbedded = "embedded-logic"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MeasurementData carries the report's measurement strings.
type MeasurementData struct {
	Data []string `json:"data"`
}

// Context is the report context embedded into the system prompt and used by
// the fallback templates.
type Context struct {
	Overview       string          `json:"overview"`
	Findings       []string        `json:"findings"`
	Measurements   MeasurementData `json:"measurements"`
	PatientSupport string          `json:"patientSupport"`
}

// Request is the chat request body.
type Request struct {
	Messages []Message `json:"messages"`
	Context  Context   `json:"context"`
}

// Response is the assistant's reply.
type Response struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Responder produces chat replies. At most one probe of the local service is
// made per message; there is no retry or queueing.
type Responder struct {
	llmURL       string
	model        string
	probeTimeout time.Duration
	client       *http.Client
	log          *zap.Logger
}

// NewResponder creates a responder probing llmURL (an Ollama-compatible
// endpoint). An empty llmURL disables the probe entirely.
func NewResponder(llmURL, model string, probeTimeout time.Duration, log *zap.Logger) *Responder {
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{
		llmURL:       strings.TrimRight(llmURL, "/"),
		model:        model,
		probeTimeout: probeTimeout,
		client:       &http.Client{},
		log:          log,
	}
}

// Reply answers the last user message. It never returns an error for an
// unreachable inference service; that path silently selects the embedded
// templates.
func (r *Responder) Reply(ctx context.Context, req Request) Response {
	if r.llmURL != "" && r.reachable(ctx) {
		if resp, err := r.forward(ctx, req); err == nil {
			return resp
		} else {
			r.log.Debug("local inference failed, using embedded logic", zap.Error(err))
		}
	}
	return Response{
		Role:    "assistant",
		Content: fallbackContent(lastUserMessage(req.Messages), req.Context),
		Source:  SourceEmbedded,
	}
}

// reachable probes the inference service within the probe timeout.
func (r *Responder) reachable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(probeCtx, http.MethodGet, r.llmURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(httpReq)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type llmChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type llmChatResponse struct {
	Message Message `json:"message"`
}

// forward sends the conversation, prefixed by a synthesized system prompt
// embedding the report context, to the local inference service.
func (r *Responder) forward(ctx context.Context, req Request) (Response, error) {
	messages := append([]Message{{Role: "system", Content: systemPrompt(req.Context)}}, req.Messages...)

	body, err := json.Marshal(llmChatRequest{Model: r.model, Messages: messages, Stream: false})
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.llmURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("inference service returned %d", resp.StatusCode)
	}

	var out llmChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if out.Message.Content == "" {
		return Response{}, fmt.Errorf("inference service returned an empty message")
	}

	return Response{Role: "assistant", Content: out.Message.Content, Source: SourceLocalLLM}, nil
}

func systemPrompt(c Context) string {
	var b strings.Builder
	b.WriteString("You are a radiology report assistant. Answer questions about the current study using only the report context below.\n")
	if c.Overview != "" {
		b.WriteString("\nOverview: " + c.Overview + "\n")
	}
	if len(c.Findings) > 0 {
		b.WriteString("Findings: " + strings.Join(c.Findings, "; ") + "\n")
	}
	if len(c.Measurements.Data) > 0 {
		b.WriteString("Measurements: " + strings.Join(c.Measurements.Data, ", ") + "\n")
	}
	if c.PatientSupport != "" {
		b.WriteString("Patient summary: " + c.PatientSupport + "\n")
	}
	return b.String()
}

func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
