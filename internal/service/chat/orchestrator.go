package chat

import (
	"context"
	"sync"

	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
	"github.com/anhngx/grambot/pkg/retry"
)

// MemoryIndex is the long-term semantic memory the orchestrator reads
// and writes.
type MemoryIndex interface {
	Insert(ctx context.Context, text string) (int64, error)
	Query(ctx context.Context, text string, k int) ([]string, error)
}

// Completer produces a reply for an assembled prompt.
type Completer interface {
	Complete(ctx context.Context, messages []core.Message) (string, error)
}

type Config struct {
	// HistoryWindow is H, the maximum historical turns per prompt.
	HistoryWindow int
	// TopK is the number of semantic fragments retrieved per utterance.
	TopK int
	// GenerationAttempts is the total generation budget including the
	// first try; values below 1 are treated as 1.
	GenerationAttempts int
}

// Orchestrator runs the per-utterance pipeline: recall and retrieve
// concurrently, assemble, generate, then persist the new turn pair.
// Only a generation failure aborts the request; every other stage
// degrades and continues.
type Orchestrator struct {
	turns     core.TurnsRepository
	memory    MemoryIndex
	assembler *Assembler
	gateway   Completer
	retrier   *retry.Retrier
	cfg       Config
}

func NewOrchestrator(turns core.TurnsRepository, memory MemoryIndex, assembler *Assembler, gateway Completer, cfg Config) *Orchestrator {
	if cfg.GenerationAttempts < 1 {
		cfg.GenerationAttempts = 1
	}

	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = cfg.GenerationAttempts - 1

	return &Orchestrator{
		turns:     turns,
		memory:    memory,
		assembler: assembler,
		gateway:   gateway,
		retrier:   retry.NewRetrier(retryCfg),
		cfg:       cfg,
	}
}

// Handle processes one utterance and returns the reply together with the
// newest turn pair. The turn pair is also persisted to history and to
// the semantic index, best effort, strictly after the reply is known.
func (o *Orchestrator) Handle(ctx context.Context, userID, utterance string) (core.Reply, error) {
	logger := log.FromCtx(ctx)

	// Recall and retrieve are independent reads; run them together.
	// Either may fail without aborting the request.
	var (
		history   []core.Turn
		fragments []string
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		turns, err := o.turns.Recent(ctx, userID, o.cfg.HistoryWindow)
		if err != nil {
			logger.Warn().Err(err).Str("user_id", userID).Msg("history recall failed, continuing without history")
			return
		}
		history = turns
	}()
	go func() {
		defer wg.Done()
		results, err := o.memory.Query(ctx, utterance, o.cfg.TopK)
		if err != nil {
			logger.Warn().Err(err).Msg("semantic retrieval failed, continuing without context")
			return
		}
		fragments = results
	}()
	wg.Wait()

	messages := o.assembler.Assemble(fragments, history, utterance)

	var reply string
	err := o.retrier.Do(ctx, func() error {
		var genErr error
		reply, genErr = o.gateway.Complete(ctx, messages)
		return genErr
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("generation failed")
		return core.Reply{}, err
	}

	o.persist(ctx, userID, utterance, reply)

	return core.Reply{
		Text: reply,
		Turns: []core.Message{
			{Role: core.RoleUser, Content: utterance},
			{Role: core.RoleAssistant, Content: reply},
		},
	}, nil
}

// persist records the finished exchange in both stores. The two writes
// are independent; each failure is logged and swallowed so it cannot
// disturb the reply already produced.
func (o *Orchestrator) persist(ctx context.Context, userID, utterance, reply string) {
	logger := log.FromCtx(ctx)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := o.turns.Append(ctx, userID, core.RoleUser, utterance); err != nil {
			logger.Error().Err(err).Str("user_id", userID).Msg("failed to save user turn")
		}
		if err := o.turns.Append(ctx, userID, core.RoleAssistant, reply); err != nil {
			logger.Error().Err(err).Str("user_id", userID).Msg("failed to save assistant turn")
		}
	}()

	go func() {
		defer wg.Done()
		for _, text := range []string{utterance, reply} {
			if _, err := o.memory.Insert(ctx, text); err != nil {
				logger.Error().Err(err).Msg("failed to index fragment")
			}
		}
	}()

	wg.Wait()
}
