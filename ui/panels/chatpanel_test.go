package panels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medview/internal/app"
	"medview/internal/assistant"
	"medview/internal/study"
)

// slowInferenceServer fakes an Ollama endpoint whose chat reply takes delay
// to produce. The returned channel receives once per served chat request.
func slowInferenceServer(t *testing.T, delay time.Duration, content string) (*httptest.Server, chan struct{}) {
	t.Helper()
	served := make(chan struct{}, 4)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": assistant.Message{Role: "assistant", Content: content},
		})
		served <- struct{}{}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, served
}

func (cp *ChatPanel) historySnapshot() []assistant.Message {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	out := make([]assistant.Message, len(cp.history))
	copy(out, cp.history)
	return out
}

func TestChatReplyAppendedForCurrentStudy(t *testing.T) {
	test.NewApp()

	srv, served := slowInferenceServer(t, 10*time.Millisecond, "The nodule measures 8.4 mm.")
	responder := assistant.NewResponder(srv.URL, "test-model", time.Second, nil)

	state := app.NewState(study.FixtureRepository(), 1)
	defer state.Close()
	require.NoError(t, state.LoadStudy("STU-2024-0001"))

	cp := NewChatPanel(state, responder)
	cp.send("how big is the nodule?")

	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("inference stub was never called")
	}

	require.Eventually(t, func() bool {
		return len(cp.historySnapshot()) == 2
	}, time.Second, 10*time.Millisecond)

	history := cp.historySnapshot()
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "The nodule measures 8.4 mm.", history[1].Content)
	assert.Contains(t, cp.transcript.Text, "The nodule measures 8.4 mm.")
}

func TestChatReplyDroppedAfterStudyChange(t *testing.T) {
	test.NewApp()

	srv, served := slowInferenceServer(t, 150*time.Millisecond, "The nodule measures 8.4 mm.")
	responder := assistant.NewResponder(srv.URL, "test-model", time.Second, nil)

	state := app.NewState(study.FixtureRepository(), 1)
	defer state.Close()
	require.NoError(t, state.LoadStudy("STU-2024-0001"))

	cp := NewChatPanel(state, responder)
	cp.send("how big is the nodule?")

	// Switch studies while the reply is still in flight.
	require.NoError(t, state.LoadStudy("STU-2024-0002"))
	assert.Empty(t, cp.historySnapshot())

	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("inference stub was never called")
	}
	time.Sleep(100 * time.Millisecond)

	// The late reply must not resurface in the new study's conversation.
	assert.Empty(t, cp.historySnapshot())
	assert.Equal(t, chatPlaceholder, cp.transcript.Text)
}

func TestChatHistoryResetOnStudyLoad(t *testing.T) {
	test.NewApp()

	responder := assistant.NewResponder("", "", time.Second, nil)

	state := app.NewState(study.FixtureRepository(), 1)
	defer state.Close()
	require.NoError(t, state.LoadStudy("STU-2024-0001"))

	cp := NewChatPanel(state, responder)
	cp.send("hello")

	require.Eventually(t, func() bool {
		return len(cp.historySnapshot()) == 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, state.LoadStudy("STU-2024-0002"))
	assert.Empty(t, cp.historySnapshot())
	assert.Equal(t, chatPlaceholder, cp.transcript.Text)
}
