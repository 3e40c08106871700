package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/progress"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the virtual assistant from the terminal",
	Long: `Starts an interactive session with the rule-based virtual assistant.
Replies arrive after the configured typing delay, in the order the questions
were asked. Type "salir" or press Ctrl+C to leave.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().Duration("delay", 0, "reply delay (overrides chat.reply_delay)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	delay := cfg.Chat.ReplyDelay
	if cmd.Flags().Changed("delay") {
		delay, _ = cmd.Flags().GetDuration("delay")
	}

	cat := catalog.Default()
	cs := chat.NewSession(chat.DefaultSelector(), chat.WithDelay(delay))
	defer cs.Close()

	msgs, unsubscribe := cs.Subscribe()
	defer unsubscribe()

	indicator := progress.NewIndicator(os.Stderr)

	fmt.Println(titleStyle.Render("Asistente Virtual de Soporte TI"))
	fmt.Println(mutedStyle.Render(`Escribe tu consulta. "salir" para terminar.`))
	fmt.Println()

	for {
		prompt := promptui.Prompt{Label: "Tú"}
		text, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		if isExit(text) {
			return nil
		}

		_, ok, err := cs.Submit(text)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		indicator.Start("El asistente está escribiendo...")
		reply, ok := nextReply(msgs)
		indicator.Stop()
		if !ok {
			return nil
		}
		fmt.Print(renderReply(reply, cat))
		fmt.Println()
	}
}

// nextReply skips the echo of the visitor's own message and returns the
// next assistant reply. ok is false once the session is closed.
func nextReply(msgs <-chan chat.Message) (chat.Message, bool) {
	for m := range msgs {
		if m.Role == chat.RoleBot {
			return m, true
		}
	}
	return chat.Message{}, false
}

func isExit(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "salir", "exit", "quit":
		return true
	}
	return false
}
