package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/wire"
)

// MessageCmd returns the message command
func MessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Send and browse messages",
	}

	cmd.AddCommand(messageSendCmd())
	cmd.AddCommand(messageListCmd())
	cmd.AddCommand(messageStatusCmd())

	return cmd
}

func messageSendCmd() *cobra.Command {
	var as, attachment string

	cmd := &cobra.Command{
		Use:   "send <conversation-id> [text...]",
		Short: "Send a message into a conversation",
		Long: `Send a text and/or attachment message.

At least one of the text body or --attachment is required.

Examples:
  courier message send 6f1a... "see you at eight" --as alice
  courier message send 6f1a... --attachment https://cdn.example.com/pic.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			return wire.MessagingAdapter().Send(NewContext(), args[0], actor, text, attachment)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")
	cmd.Flags().StringVar(&attachment, "attachment", "", "Attachment URL")

	return cmd
}

func messageListCmd() *cobra.Command {
	var as string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list <conversation-id>",
		Short: "Show one page of conversation history",
		Long: `Show conversation history, newest page first.

Page 1 holds the most recent messages; higher pages reach further back.

Examples:
  courier message list 6f1a... --as alice
  courier message list 6f1a... --page 2 --page-size 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().ListMessages(NewContext(), args[0], actor, page, pageSize)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1 = newest)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Messages per page (default 20, max 100)")

	return cmd
}

func messageStatusCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "status <message-id> <sent|delivered|read|failed>",
		Short: "Set a message's delivery status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().SetStatus(NewContext(), args[0], args[1], actor)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}
