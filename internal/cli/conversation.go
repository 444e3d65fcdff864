package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/wire"
)

// ConversationCmd returns the conversation command
func ConversationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Manage direct-message conversations",
		Long: `Find, create, and list conversations.

A conversation is the single channel between two users: starting one with
the same person twice always lands in the same conversation.`,
	}

	cmd.AddCommand(conversationStartCmd())
	cmd.AddCommand(conversationListCmd())

	return cmd
}

func conversationStartCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "start <user-id>",
		Short: "Find or create the conversation with another user",
		Long: `Find or create the conversation with another user.

Examples:
  courier conversation start bob --as alice
  courier conversation start carol`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().StartConversation(NewContext(), actor, args[0])
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}

func conversationListCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your conversations, most recently active first",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor(as)
			if err != nil {
				return err
			}
			return wire.MessagingAdapter().ListConversations(NewContext(), actor)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Acting user ID (defaults to configured default_user)")

	return cmd
}
