package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"hisaab/internal/amqp"
	"hisaab/internal/cli"
	"hisaab/internal/llm"
	"hisaab/internal/log"
	"hisaab/internal/services"
)

// queryPrefixes mark an utterance as a question even without a trailing
// question mark.
var queryPrefixes = []string{
	"how", "what", "when", "where", "which", "who",
	"show", "list", "total", "top", "did i", "do i",
}

func isQuery(utterance string) bool {
	u := strings.ToLower(strings.TrimSpace(utterance))
	if strings.HasSuffix(u, "?") {
		return true
	}
	for _, prefix := range queryPrefixes {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return false
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting hisaab")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// The assistant runs without the external classifier: fallbacks
	// categorize everything as "other" and ranges default to full
	// history.
	var completer llm.Completer = llm.Offline{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(context.Background(), llm.GeminiConfig{
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.GeminiModel,
			Timeout:  cfg.ClassifierTimeout,
			Attempts: cfg.ClassifierAttempts,
		}, logger)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", log.FieldError, err)
			os.Exit(1)
		}
		completer = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, running with deterministic fallbacks only")
	}

	// AMQP is optional: without it expenses are still stored, only the
	// mirror events are skipped.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without events", log.FieldError, err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	classifier := llm.NewClassifier(completer, logger)
	assistant := services.NewAssistant(classifier, repo, publisher, logger)

	runREPL(assistant)
}

// runREPL reads one utterance per line and prints the assistant's
// reply. Lines ending in "?" or starting with a question word are
// treated as queries; everything else records expenses.
func runREPL(assistant *services.Assistant) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println(`Tell me what you spent ("coffee 150 and uber 300") or ask a question ("total?"). Ctrl-D to quit.`)
	fmt.Print("> ")
	for scanner.Scan() {
		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			fmt.Print("> ")
			continue
		}
		if utterance == "exit" || utterance == "quit" {
			break
		}

		var reply string
		if isQuery(utterance) {
			reply = assistant.HandleQuery(ctx, utterance)
		} else {
			reply = assistant.HandleAdd(ctx, utterance)
		}
		fmt.Println(reply)
		fmt.Print("> ")
	}
	fmt.Println("Bye!")
}
