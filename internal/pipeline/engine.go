package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/ambiguity"
	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
	"github.com/yogeshramchandani7/cr360-backend/internal/memory"
)

// Engine is the public entry point of the query pipeline. It owns
// ambiguity detection, session memory, and the retry orchestrator.
type Engine struct {
	cat      *catalog.Catalog
	detector *ambiguity.Detector
	orch     *Orchestrator
	sessions *memory.Manager
	log      *zap.Logger
}

// NewEngine assembles the pipeline around an already-wired orchestrator.
func NewEngine(cat *catalog.Catalog, orch *Orchestrator, sessions *memory.Manager, log *zap.Logger) (*Engine, error) {
	detector, err := ambiguity.NewDetector(cat.AmbiguousTerms())
	if err != nil {
		return nil, fmt.Errorf("building ambiguity detector: %w", err)
	}
	return &Engine{
		cat:      cat,
		detector: detector,
		orch:     orch,
		sessions: sessions,
		log:      log,
	}, nil
}

// Process answers one question within a session. skipClarification
// bypasses ambiguity detection; callers set it after the user has
// already answered a clarification request.
func (e *Engine) Process(ctx context.Context, question, sessionID string, skipClarification bool) (*QueryResult, error) {
	session, err := e.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}

	mem, unlock := session.Lock()
	defer unlock()

	if !skipClarification {
		if req := e.detector.Detect(question); req != nil {
			// Clarification exchanges are part of the conversation, so a
			// later "yes, net" still has its context.
			mem.AddUserTurn(question)
			mem.AddAssistantTurn(req.Message, "", "")
			recordQuery("clarification")
			e.log.Info("clarification requested",
				zap.String("session", session.ID),
				zap.Int("terms", len(req.AmbiguousTerms)))
			return &QueryResult{
				Success:            false,
				NeedsClarification: true,
				Clarification:      req,
				Confidence:         1,
				SessionID:          session.ID,
			}, nil
		}
	}

	mem.AddUserTurn(question)
	memoryContext := mem.ContextForPrompt()

	res := e.orch.Run(ctx, question, memoryContext)
	res.SessionID = session.ID

	if res.Success {
		res.VisualizationHint = SuggestVisualization(res.GeneratedQuery, res.Data)
	}

	mem.AddAssistantTurn(res.Explanation, res.GeneratedQuery, resultSummary(res))
	return res, nil
}

// AugmentWithClarifications rewrites a question with the user's
// clarification choices appended, so the next generation pass sees them.
func AugmentWithClarifications(question string, clarifications map[string]string) string {
	if len(clarifications) == 0 {
		return question
	}

	parts := make([]string, 0, len(clarifications))
	for _, term := range sortedKeys(clarifications) {
		parts = append(parts, fmt.Sprintf("%s='%s'", term, clarifications[term]))
	}
	return fmt.Sprintf("%s [User clarifications: %s]", question, strings.Join(parts, ", "))
}

// ResetSession clears a session's memory.
func (e *Engine) ResetSession(id string) {
	e.sessions.Reset(id)
}

// RemoveSession deletes a session.
func (e *Engine) RemoveSession(id string) {
	e.sessions.Remove(id)
}

// CreateSession allocates a fresh session and returns its ID.
func (e *Engine) CreateSession() (string, error) {
	s, err := e.sessions.Get("")
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// Catalog exposes the engine's semantic model to transports.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

func resultSummary(res *QueryResult) string {
	if !res.Success {
		return ""
	}
	return fmt.Sprintf("%d rows", res.RowCount)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
