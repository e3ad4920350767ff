package main

import (
	"context"
	"fmt"
	"os"

	"nestle-in-be/pkg/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	var serverURL string
	var identityPath string

	newClient := func() (*client.Client, client.Identity, error) {
		id, err := client.LoadIdentity(identityPath)
		if err != nil {
			return nil, client.Identity{}, err
		}
		return client.New(serverURL), id, nil
	}

	root := &cobra.Command{
		Use:   "chat",
		Short: "Terminal client for the Nestle-In chat API",
		Long: "chat talks to a running Nestle-In backend with a persistent local identity.\n\n" +
			"The identity file is created on first use; every command reuses the same userId.",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "backend base URL")
	root.PersistentFlags().StringVar(&identityPath, "identity", client.DefaultIdentityPath(), "identity file path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, id, err := newClient()
			if err != nil {
				return err
			}
			list, err := api.ListSessions(context.Background(), id.UserId, 1, 50)
			if err != nil {
				return err
			}
			if len(list.Sessions) == 0 {
				fmt.Println("No chat sessions yet.")
				return nil
			}
			for _, s := range list.Sessions {
				color.Cyan("%s", s.ChatId)
				fmt.Printf("  %s (created %s)\n", s.Title, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Printf("\n%d sessions, page %d of %d\n", list.TotalSessions, list.CurrentPage, list.TotalPages)
			return nil
		},
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, id, err := newClient()
			if err != nil {
				return err
			}
			res, err := api.CreateSession(context.Background(), id.UserId, "")
			if err != nil {
				return err
			}
			color.Green("Created session %s (%s)", res.ChatId, res.Title)
			return nil
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send <chatId> <message>",
		Short: "Send a message and print the reply",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, id, err := newClient()
			if err != nil {
				return err
			}
			res, err := api.SendMessage(context.Background(), id.UserId, args[0], args[1])
			if err != nil {
				return err
			}
			color.Yellow("bot: %s", res.Response)
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <chatId>",
		Short: "Show the full history of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, id, err := newClient()
			if err != nil {
				return err
			}
			history, err := api.GetHistory(context.Background(), id.UserId, args[0])
			if err != nil {
				return err
			}
			color.Cyan("%s", history.Title)
			for _, msg := range history.Messages {
				prefix := "you"
				if msg.Sender == "bot" {
					prefix = "bot"
				}
				fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Format("15:04:05"), prefix, msg.Text)
			}
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <chatId> <title>",
		Short: "Rename a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, id, err := newClient()
			if err != nil {
				return err
			}
			res, err := api.UpdateTitle(context.Background(), id.UserId, args[0], args[1])
			if err != nil {
				return err
			}
			color.Green("Renamed %s to %q", res.ChatId, res.Title)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <chatId>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, id, err := newClient()
			if err != nil {
				return err
			}
			if err := api.DeleteSession(context.Background(), id.UserId, args[0]); err != nil {
				return err
			}
			color.Green("Deleted %s", args[0])
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the local identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, id, err := newClient()
			if err != nil {
				return err
			}
			fmt.Println(id.UserId)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the local identity",
		Long:  "Removes the identity file. The next command starts over with a fresh userId.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ClearIdentity(identityPath); err != nil {
				return err
			}
			color.Green("Identity cleared")
			return nil
		},
	}

	root.AddCommand(listCmd, newCmd, sendCmd, historyCmd, renameCmd, deleteCmd, whoamiCmd, logoutCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
