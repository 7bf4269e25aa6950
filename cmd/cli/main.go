package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"github.com/joho/godotenv"
	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/config"
	"github.com/ppdsupport/companion/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// readlineSource adapts a readline instance, folding Ctrl-C on an empty
// line into end of input
type readlineSource struct {
	rl *readline.Instance
}

func (s readlineSource) ReadLine() (string, error) {
	line, err := s.rl.ReadLine()
	if errors.Is(err, readline.ErrInterrupt) {
		if strings.TrimSpace(line) == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

func newRootCmd() *cobra.Command {
	delay := config.GetTypingDelay()

	cmd := &cobra.Command{
		Use:           "companion-chat",
		Short:         "Chat with the postpartum support companion from a terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.New("you> ")
			if err != nil {
				return err
			}
			defer rl.Close()

			session := &chatSession{
				responder: assistant.NewResponder(nil),
				out:       cmd.OutOrStdout(),
				delay:     delay,
			}
			return session.Run(readlineSource{rl: rl})
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", delay, "pause before each reply, 0 to disable")
	return cmd
}

func main() {
	_ = godotenv.Load()
	logger.Setup(nil)

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("companion-chat failed")
		os.Exit(1)
	}
}
