// Package http adapts the quiz engine to a browser front end over
// WebSocket. The adapter carries no game rules: every message maps onto
// one engine or store operation, and the client owns the one-second
// countdown tick exactly like the original browser UI.
package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/engmhmdsamy/quiz-game/internal/bank"
	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/engine"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
	"github.com/engmhmdsamy/quiz-game/internal/results"
)

type WSHandler struct {
	repo     *bank.Repository
	store    leaderboard.Store
	upgrader websocket.Upgrader
}

func NewWSHandler(repo *bank.Repository, store leaderboard.Store) *WSHandler {
	return &WSHandler{
		repo:  repo,
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	PlayerName    string `json:"playerName"`
	QuestionCount int    `json:"questionCount"`
}

type answerPayload struct {
	// Option is null for the timeout path (no answer given).
	Option   *string `json:"option"`
	TimeLeft int     `json:"timeLeft"`
}

type boardPayload struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type answerResult struct {
	Record domain.AnswerRecord `json:"record"`
	Score  int                 `json:"score"`
	Stats  domain.SessionStats `json:"stats"`
	Done   bool                `json:"done"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and drives one quiz engine per
// client. One connection, one active session at a time.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	eng := engine.NewEngine(h.repo, results.NewAggregator(h.store))
	ctx := r.Context()

	send := func(msg outboundMessage[any]) bool {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error: %v", err)
			return false
		}
		return true
	}
	sendErr := func(message string) bool {
		return send(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				if !sendErr("invalid start payload") {
					return
				}
				continue
			}
			difficulty, ok := domain.ParseDifficulty(payload.Difficulty)
			if !ok {
				if !sendErr("unknown difficulty") {
					return
				}
				continue
			}
			eng.Start(ctx, domain.GameSettings{
				Category:      payload.Category,
				Difficulty:    difficulty,
				PlayerName:    payload.PlayerName,
				QuestionCount: payload.QuestionCount,
			})
			// An empty question list in the snapshot means "cannot
			// start"; the client renders the no-questions state.
			if !send(outboundMessage[any]{Type: "started", Payload: eng.Snapshot()}) {
				return
			}

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				if !sendErr("invalid answer payload") {
					return
				}
				continue
			}
			var record domain.AnswerRecord
			var submitErr error
			if payload.Option == nil {
				record, submitErr = eng.SubmitTimeout()
			} else {
				record, submitErr = eng.SubmitAnswer(*payload.Option, payload.TimeLeft)
			}
			if submitErr != nil {
				if !sendErr(submitErr.Error()) {
					return
				}
				continue
			}
			snap := eng.Snapshot()
			if !send(outboundMessage[any]{Type: "answerResult", Payload: answerResult{
				Record: record,
				Score:  snap.Score,
				Stats:  snap.Stats,
				Done:   eng.Done(),
			}}) {
				return
			}

		case "advance":
			if err := eng.Advance(); err != nil {
				if !sendErr(err.Error()) {
					return
				}
				continue
			}
			if !send(outboundMessage[any]{Type: "state", Payload: eng.Snapshot()}) {
				return
			}

		case "end":
			result, err := eng.End(ctx)
			if err != nil {
				if !sendErr(err.Error()) {
					return
				}
				continue
			}
			if !send(outboundMessage[any]{Type: "result", Payload: result}) {
				return
			}

		case "reset":
			eng.Reset()
			if !send(outboundMessage[any]{Type: "state", Payload: eng.Snapshot()}) {
				return
			}

		case "leaderboard":
			filter := leaderboard.Filter{}
			if len(inbound.Payload) > 0 {
				var payload boardPayload
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					if !sendErr("invalid leaderboard payload") {
						return
					}
					continue
				}
				difficulty, ok := domain.ParseDifficulty(payload.Difficulty)
				if !ok {
					if !sendErr("unknown difficulty") {
						return
					}
					continue
				}
				filter = leaderboard.Filter{Category: payload.Category, Difficulty: difficulty}
			}
			entries, err := h.store.Query(ctx, filter)
			if err != nil {
				if !sendErr(err.Error()) {
					return
				}
				continue
			}
			if !send(outboundMessage[any]{Type: "leaderboard", Payload: entries}) {
				return
			}

		default:
			if !sendErr("unsupported message type") {
				return
			}
		}
	}
}
