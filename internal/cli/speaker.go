package cli

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// Speaker plays back a revealed answer. Implementations are purely an output
// side effect; failures never interrupt a session.
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// NewSpeaker returns a command-backed speaker, or a no-op one when no player
// command is configured.
func NewSpeaker(command string) Speaker {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return noopSpeaker{}
	}
	return &execSpeaker{name: fields[0], args: fields[1:]}
}

type noopSpeaker struct{}

func (noopSpeaker) Speak(context.Context, string) {}

// execSpeaker hands the text to an external player command, such as
// "say" on macOS or "espeak" on Linux.
type execSpeaker struct {
	name string
	args []string
}

func (s *execSpeaker) Speak(ctx context.Context, text string) {
	args := append(append([]string{}, s.args...), text)
	if err := exec.CommandContext(ctx, s.name, args...).Run(); err != nil {
		slog.Default().Warn("failed to play answer audio",
			slog.String("command", s.name),
			slog.Any("error", err),
		)
	}
}
