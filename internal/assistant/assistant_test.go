package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContext = Context{
	Overview: "Chest CT demonstrating a solitary pulmonary nodule.",
	Findings: []string{"Nodule", "Granuloma"},
	Measurements: MeasurementData{
		Data: []string{"8.4 mm diameter", "3.1 mm diameter"},
	},
	PatientSupport: "The scan found a small spot that your doctor will discuss with you.",
}

func userReq(text string) Request {
	return Request{
		Messages: []Message{{Role: "user", Content: text}},
		Context:  testContext,
	}
}

func TestFallbackMeasurementsTemplate(t *testing.T) {
	want := fmt.Sprintf("The key measurements from this study are: %s.",
		strings.Join(testContext.Measurements.Data, ", "))

	for _, q := range []string{
		"What size is the nodule?",
		"Can you measure it?",
		"how big is it",
		"What is its diameter?",
	} {
		assert.Equal(t, want, fallbackContent(q, testContext), "question %q", q)
	}
}

func TestFallbackFindingsTemplate(t *testing.T) {
	got := fallbackContent("What findings are there?", testContext)
	assert.Contains(t, got, "Nodule; Granuloma")
}

func TestFallbackOverviewTemplate(t *testing.T) {
	got := fallbackContent("Give me an overview", testContext)
	assert.Equal(t, testContext.Overview, got)
}

func TestFallbackPatientSupportTemplate(t *testing.T) {
	got := fallbackContent("Should I be worried?", testContext)
	assert.Equal(t, testContext.PatientSupport, got)
}

func TestFallbackDefaultTemplate(t *testing.T) {
	got := fallbackContent("hello there", testContext)
	assert.Contains(t, got, "I can answer questions about this study's findings")
}

func TestFallbackBranchOrder(t *testing.T) {
	// "size" beats "finding" when both keywords appear.
	got := fallbackContent("what size is the finding", testContext)
	assert.Contains(t, got, "The key measurements")
}

func TestFallbackEmptyContext(t *testing.T) {
	empty := Context{}
	assert.Equal(t, "No measurements were recorded for this study.",
		fallbackContent("what size", empty))
	assert.Equal(t, "The analysis did not flag any findings for this study.",
		fallbackContent("any findings?", empty))
	assert.Equal(t, "No report overview is available for this study yet.",
		fallbackContent("overview please", empty))
}

func TestReplyFallsBackWhenUnreachable(t *testing.T) {
	// Point the responder at a server that is already closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	r := NewResponder(srv.URL, "test-model", 100*time.Millisecond, nil)
	resp := r.Reply(context.Background(), userReq("what size is it?"))

	assert.Equal(t, "assistant", resp.Role)
	assert.Equal(t, SourceEmbedded, resp.Source)
	assert.Contains(t, resp.Content, "The key measurements")
}

func TestReplyFallsBackWithoutEndpoint(t *testing.T) {
	r := NewResponder("", "", 0, nil)
	resp := r.Reply(context.Background(), userReq("hello"))
	assert.Equal(t, SourceEmbedded, resp.Source)
}

func TestReplyForwardsToLocalService(t *testing.T) {
	var gotChat llmChatRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotChat))
		json.NewEncoder(w).Encode(llmChatResponse{
			Message: Message{Role: "assistant", Content: "The nodule measures 8.4 mm."},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewResponder(srv.URL, "test-model", time.Second, nil)
	resp := r.Reply(context.Background(), userReq("how big is the nodule?"))

	assert.Equal(t, SourceLocalLLM, resp.Source)
	assert.Equal(t, "The nodule measures 8.4 mm.", resp.Content)

	// The forwarded conversation gains a system prompt with the context.
	require.NotEmpty(t, gotChat.Messages)
	assert.Equal(t, "system", gotChat.Messages[0].Role)
	assert.Contains(t, gotChat.Messages[0].Content, testContext.Overview)
	assert.Equal(t, "test-model", gotChat.Model)
	assert.False(t, gotChat.Stream)
}

func TestReplyFallsBackOnInferenceError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewResponder(srv.URL, "test-model", time.Second, nil)
	resp := r.Reply(context.Background(), userReq("what findings?"))

	assert.Equal(t, SourceEmbedded, resp.Source)
	assert.Contains(t, resp.Content, "Nodule; Granuloma")
}

func TestLastUserMessage(t *testing.T) {
	messages := []Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply"},
		{Role: "user", Content: "second"},
	}
	assert.Equal(t, "second", lastUserMessage(messages))
	assert.Equal(t, "", lastUserMessage(nil))
	assert.Equal(t, "", lastUserMessage([]Message{{Role: "assistant", Content: "x"}}))
}
