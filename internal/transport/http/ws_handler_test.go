package http

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/engmhmdsamy/quiz-game/internal/bank"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	repo := bank.NewRepository(bank.NewEmbedLoader(), time.Minute,
		bank.WithRand(rand.New(rand.NewSource(1))))
	store := memory.NewStore()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(repo, store).ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, store
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketFullGameFlow(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dialWS(t, server)

	start := map[string]any{
		"type": "start",
		"payload": map[string]any{
			"category":      "science",
			"difficulty":    "easy",
			"playerName":    "Alice",
			"questionCount": 2,
		},
	}
	if err := conn.WriteJSON(start); err != nil {
		t.Fatalf("write start: %v", err)
	}

	_, payload := readNext(conn, t, "started")
	questions, ok := payload["questions"].([]any)
	if !ok || len(questions) != 2 {
		t.Fatalf("expected 2 questions in started payload, got %v", payload["questions"])
	}

	// Answer the first question correctly using the answer echoed in the
	// snapshot, then advance.
	first := questions[0].(map[string]any)
	answer := map[string]any{
		"type": "answer",
		"payload": map[string]any{
			"option":   first["answer"],
			"timeLeft": 10,
		},
	}
	if err := conn.WriteJSON(answer); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	_, payload = readNext(conn, t, "answerResult")
	record := payload["record"].(map[string]any)
	if record["correct"] != true {
		t.Fatalf("expected correct answer, got %v", record)
	}
	if payload["done"] != false {
		t.Fatalf("expected session not done after first answer")
	}

	if err := conn.WriteJSON(map[string]any{"type": "advance"}); err != nil {
		t.Fatalf("write advance: %v", err)
	}
	readNext(conn, t, "state")

	// Null option means the countdown expired.
	timeout := map[string]any{
		"type":    "answer",
		"payload": map[string]any{"option": nil, "timeLeft": 0},
	}
	if err := conn.WriteJSON(timeout); err != nil {
		t.Fatalf("write timeout: %v", err)
	}
	_, payload = readNext(conn, t, "answerResult")
	record = payload["record"].(map[string]any)
	if record["timedOut"] != true || record["correct"] != false {
		t.Fatalf("expected timed-out record, got %v", record)
	}
	if payload["done"] != true {
		t.Fatalf("expected session done after final answer")
	}

	if err := conn.WriteJSON(map[string]any{"type": "end"}); err != nil {
		t.Fatalf("write end: %v", err)
	}
	_, payload = readNext(conn, t, "result")
	if payload["accuracy"] != float64(50) {
		t.Fatalf("expected 50%% accuracy, got %v", payload["accuracy"])
	}
	if payload["rating"] != "Keep Trying" {
		t.Fatalf("expected Keep Trying rating, got %v", payload["rating"])
	}

	// The finished session must be on the board.
	if err := conn.WriteJSON(map[string]any{"type": "leaderboard"}); err != nil {
		t.Fatalf("write leaderboard: %v", err)
	}
	var board struct {
		Type    string           `json:"type"`
		Payload []map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&board); err != nil {
		t.Fatalf("read leaderboard: %v", err)
	}
	if board.Type != "leaderboard" || len(board.Payload) != 1 {
		t.Fatalf("expected one board entry, got %+v", board)
	}
	if board.Payload[0]["playerName"] != "Alice" {
		t.Fatalf("unexpected board entry: %v", board.Payload[0])
	}
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dialWS(t, server)

	// Answering before start violates the session lifecycle.
	answer := map[string]any{
		"type":    "answer",
		"payload": map[string]any{"option": "x", "timeLeft": 5},
	}
	if err := conn.WriteJSON(answer); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	readNext(conn, t, "error")

	bad := map[string]any{
		"type": "start",
		"payload": map[string]any{
			"category":   "science",
			"difficulty": "brutal",
		},
	}
	if err := conn.WriteJSON(bad); err != nil {
		t.Fatalf("write start: %v", err)
	}
	readNext(conn, t, "error")

	if err := conn.WriteJSON(map[string]any{"type": "shout"}); err != nil {
		t.Fatalf("write unknown: %v", err)
	}
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "unsupported message type" {
		t.Fatalf("unexpected error payload: %v", payload)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
