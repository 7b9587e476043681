package worker

import (
	"context"
	"log/slog"

	"votee/internal/metrics"
)

// InstructionEvent describes one executed instruction. Err is empty on success and holds
// the program error name otherwise.
type InstructionEvent struct {
	TxID        string
	Instruction string
	Payer       string
	PollID      uint64
	CandidateID uint64
	Err         string
}

// InstructionWorker records executed instructions off the request path.
type InstructionWorker struct {
	Ch     <-chan InstructionEvent
	logger *slog.Logger
}

func NewInstructionWorker(ch <-chan InstructionEvent, logger *slog.Logger) *InstructionWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstructionWorker{Ch: ch, logger: logger}
}

func (w *InstructionWorker) Run(ctx context.Context) {
	w.logger.Info("instruction worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("instruction worker stopped")
			return
		case ev, ok := <-w.Ch:
			if !ok {
				w.logger.Info("instruction worker stopped")
				return
			}
			w.handle(ev)
		}
	}
}

func (w *InstructionWorker) handle(ev InstructionEvent) {
	result := "ok"
	if ev.Err != "" {
		result = ev.Err
	}
	metrics.IncInstruction(ev.Instruction, result)
	if ev.Instruction == "vote" && ev.Err == "" {
		metrics.IncVote(ev.PollID)
	}

	w.logger.Info("instruction",
		"tx_id", ev.TxID,
		"instruction", ev.Instruction,
		"payer", ev.Payer,
		"poll_id", ev.PollID,
		"candidate_id", ev.CandidateID,
		"result", result,
	)
}

// Publish hands ev to the worker without blocking the caller. Events are dropped when the
// channel is full.
func Publish(ch chan<- InstructionEvent, ev InstructionEvent) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- ev:
		return true
	default:
		return false
	}
}
