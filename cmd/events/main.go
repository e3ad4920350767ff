package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nestle-in-be/pkg/events"
	pktNats "nestle-in-be/pkg/nats"
	"nestle-in-be/pkg/rawlog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// events tails the NATS event stream: session lifecycle, message traffic and
// pod bookings, as published by the backend.
func main() {
	var natsURL string
	var durable string

	root := &cobra.Command{
		Use:   "events [subject]",
		Short: "Tail backend events from the NATS bus",
		Long: "Subscribes to the EVENTS stream and prints every matching event.\n\n" +
			"The subject defaults to everything; narrow it with e.g. " +
			"\"events.chat.>\" or \"events.pod.booked\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := "events.>"
			if len(args) == 1 {
				subject = args[0]
			}

			sub, err := pktNats.NewSubscriber(natsURL)
			if err != nil {
				return err
			}
			defer sub.Close()

			err = sub.Subscribe(subject, durable, func(ctx context.Context, evt events.Event) error {
				payload, _ := json.Marshal(evt.Payload())
				color.Cyan("%s", evt.EventType())
				fmt.Printf("  %s\n", payload)
				return nil
			})
			if err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			return nil
		},
	}

	var redisURL string

	rawlogCmd := &cobra.Command{
		Use:   "rawlog <session-id>",
		Short: "Dump the raw message log for a chat session",
		Long:  "Reads the best-effort raw message trail from Redis. Entries expire after thirty days.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := redis.ParseURL(redisURL)
			if err != nil {
				opt = &redis.Options{Addr: redisURL}
			}
			rdb := redis.NewClient(opt)
			defer rdb.Close()
			if _, err := rdb.Ping(cmd.Context()).Result(); err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}

			entries, err := rawlog.NewStore(rdb).Recent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No raw log entries for this session.")
				return nil
			}
			for _, e := range entries {
				color.Cyan("%s %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Sender)
				fmt.Printf("  %s\n", e.Text)
			}
			return nil
		},
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}
	defaultURL := os.Getenv("NATS_URL")
	if defaultURL == "" {
		defaultURL = "nats://localhost:4222"
	}

	defaultRedis := os.Getenv("REDIS_URL")
	if defaultRedis == "" {
		defaultRedis = "redis://localhost:6379"
	}

	root.Flags().StringVar(&natsURL, "nats", defaultURL, "NATS server URL")
	root.Flags().StringVar(&durable, "durable", "event-tail", "durable consumer name")
	rawlogCmd.Flags().StringVar(&redisURL, "redis", defaultRedis, "Redis server URL")
	root.AddCommand(rawlogCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
