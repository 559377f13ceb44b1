package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/dto"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/intent"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/logger"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository/memory"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/service"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/store"
)

func main() {
	filePath := flag.String("file", "", "Answer from a CSV export instead of the configured store")
	format := flag.String("format", "text", "Output format: text, json")
	listIntents := flag.Bool("intents", false, "Print the routing rules in priority order and exit")
	verbose := flag.Bool("verbose", false, "Log to stderr")
	timeout := flag.Duration("timeout", 30*time.Second, "Query timeout")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `ask answers one question about customer transactions

Usage:
  ask "total spent by customer 1023"
  ask --file transactions.csv "most popular product"
  ask --format json "latest transactions 5"
  ask --intents

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment (without --file):
  SERVICE_ENVIRONMENT, SERVICE_STORE and the store settings, as for the API
`)
	}

	flag.Parse()

	if *listIntents {
		printIntents()
		return
	}

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Error: a question is required")
		flag.Usage()
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := logger.New("development")
		if err != nil {
			fatalf("Failed to initialize logger: %v", err)
		}
		log = l
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo, err := openStore(ctx, *filePath, log)
	if err != nil {
		fatalf("Failed to open transaction store: %v", err)
	}
	defer repo.Close()

	chatService := service.NewChatService(repo, log)

	resp, err := chatService.Ask(ctx, &dto.ChatRequest{Message: question})
	if err != nil {
		if errors.Is(err, intent.ErrMalformedParameter) {
			fatalf("Could not read your question: %v", err)
		}
		fatalf("Failed to answer: %v", err)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fatalf("Failed to encode response: %v", err)
		}
	default:
		fmt.Println(resp.Response)
	}
}

// openStore seeds a memory store from a CSV file, or opens the store the
// environment selects
func openStore(ctx context.Context, filePath string, log *zap.Logger) (repository.TransactionRepository, error) {
	if filePath != "" {
		transactions, err := memory.LoadFile(filePath)
		if err != nil {
			return nil, err
		}
		return memory.NewRepository(log, transactions...), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, cfg, log)
}

func printIntents() {
	for i, rule := range intent.DefaultRules() {
		fmt.Printf("%2d  %-38s %s\n", i+1, rule.Intent, strings.Join(rule.Triggers, " | "))
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
