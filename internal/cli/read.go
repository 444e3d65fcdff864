package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/wire"
)

// ReadCmd returns the read command
func ReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Mark messages as read",
	}

	cmd.AddCommand(readConversationCmd())
	cmd.AddCommand(readMessagesCmd())
	cmd.AddCommand(readOwnCmd())

	return cmd
}

func readConversationCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "conversation <conversation-id>",
		Short: "Mark every message from the other participant as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().MarkConversationRead(NewContext(), args[0], actor)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}

func readMessagesCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "messages <conversation-id>",
		Short: "Mark the other participant's sent and delivered messages as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().MarkMessagesAsRead(NewContext(), args[0], actor)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}

func readOwnCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "own <conversation-id>",
		Short: "Mark your own sent messages as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().MarkMyMessagesAsRead(NewContext(), args[0], actor)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}

// UnreadCmd returns the unread command
func UnreadCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "unread <conversation-id>",
		Short: "Count unread messages from the other participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().Unread(NewContext(), args[0], actor)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}
