package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"eshoplite/internal/catalog"
	"eshoplite/internal/config"
	"eshoplite/internal/db"
	"eshoplite/internal/domain"
	"eshoplite/internal/llm"
	"eshoplite/internal/repository"
	"eshoplite/internal/service"
)

func main() {
	remote := flag.Bool("remote", false, "usar el microservicio de catalogo en lugar de la base SQLite local")
	flag.Parse()

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	var productCatalog catalog.ProductCatalog
	if *remote {
		productCatalog = catalog.NewAPIClient(cfg.CatalogBaseURL, nil, logger)
	} else {
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		productCatalog = service.NewCatalogService(logger,
			repository.NewSQLiteProductRepository(conn),
			repository.NewSQLiteStoreRepository(conn),
		)
	}

	chatbot := service.NewChatbotService(logger, completionBackend(cfg, logger), productCatalog, service.ChatbotSettings{
		Model:           llm.ResolveModel(cfg.LLMProvider, cfg.LLMModel),
		MaxHistoryTurns: cfg.MaxHistoryTurns,
		CallTimeout:     cfg.LLMTimeout,
	})

	sessionID := uuid.NewString()
	fmt.Println("===== eShopLite Chat =====")
	if !chatbot.AIEnabled() {
		fmt.Println("(modo sin IA: respuestas por palabras clave)")
	}
	fmt.Println("Comandos: /history, /clear, /new, salir")

	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		switch strings.ToLower(text) {
		case "salir", "exit":
			fmt.Println("Saliendo del chat...")
			return
		case "/history":
			printHistory(os.Stdout, chatbot.GetHistory(sessionID))
			continue
		case "/clear":
			chatbot.ClearHistory(sessionID)
			fmt.Println("Historial borrado.")
			continue
		case "/new":
			sessionID = uuid.NewString()
			fmt.Printf("Nueva sesion: %s\n", sessionID)
			continue
		}

		resp := chatbot.SendMessage(ctx, domain.ChatRequest{Message: text, SessionID: &sessionID})
		if !resp.IsSuccessful && resp.ErrorMessage != nil {
			fmt.Printf("error: %s\n", *resp.ErrorMessage)
		}
		fmt.Printf("Bot > %s\n", resp.Message)
	}
}

func printHistory(w io.Writer, turns []domain.ChatTurn) {
	if len(turns) == 0 {
		fmt.Fprintln(w, "(sin historial)")
		return
	}
	for _, t := range turns {
		who := "Bot"
		if t.IsUser {
			who = "Tu"
		}
		fmt.Fprintf(w, "[%s] %s > %s\n", t.Timestamp.Format("15:04:05"), who, t.Content)
	}
}

func completionBackend(cfg *config.Config, logger *zap.Logger) service.CompletionBackend {
	client, err := llm.NewChatClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.CompletionAPIKey(),
		Model:    llm.ResolveModel(cfg.LLMProvider, cfg.LLMModel),
		Timeout:  cfg.LLMTimeout,
	}, logger)
	if err != nil {
		if !errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Error("configure completion client failed", zap.Error(err))
		}
		return service.NewCompletionBackend(nil, err.Error())
	}
	return service.NewCompletionBackend(client, "")
}
