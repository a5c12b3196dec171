//go:build ignore

// Live check against a running chat endpoint:
//
//	go run test_final.go http://localhost:5000/chat
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moecatalyst/moechat/internal/api"
	"github.com/moecatalyst/moechat/internal/chat"
	"github.com/moecatalyst/moechat/internal/conversation"
	"github.com/moecatalyst/moechat/internal/logging"
	"github.com/moecatalyst/moechat/internal/models"
	"github.com/rs/zerolog"
)

func main() {
	endpoint := models.DefaultEndpoint
	if len(os.Args) > 1 {
		endpoint = os.Args[1]
	}

	logger := logging.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, zerolog.DebugLevel)
	client, err := api.NewClient(api.WithEndpoint(endpoint), api.WithTimeout(60*time.Second), api.WithLogger(logger))
	if err != nil {
		fmt.Printf("client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	store := conversation.New()
	pipeline := chat.New(client, chat.WithLogger(logger), chat.WithConversation(store))
	for _, prompt := range []string{"Merhaba!", "   ", "Kısaca kendini tanıt."} {
		out, ok := pipeline.Submit(context.Background(), prompt)
		if !ok {
			fmt.Printf("[%q] ignored\n", prompt)
			continue
		}
		fmt.Printf("[%q] %s (err=%v, fallback=%t, %s)\n", prompt, out.Message.Text, out.Err, out.Fallback, out.Duration)
	}

	user, assistant := store.Counts()
	fmt.Printf("messages: %d user, %d assistant\n\n", user, assistant)
	fmt.Print(store.ExportToMarkdown(conversation.ExportOptionsFor(pipeline.Strings())))
}
