package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"slidegen/api"
	"slidegen/config"
	"slidegen/file"
	"slidegen/llm"
	"slidegen/slides"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	allowedMIME, err := config.LoadAllowedMIMETypes(cfg.MIMEWhitelistPath)
	if err != nil {
		log.Fatalf("Failed to load mime whitelist: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// LLM backend
	// =========
	var backend llm.Backend
	switch cfg.LLMBackend {
	case config.BackendGemini:
		backend, err = llm.NewGemini(context.Background(),
			cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMBaseURL, cfg.LLMTimeout, logger)
	case config.BackendOpenAI:
		backend, err = llm.NewOpenAI(
			cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMBaseURL, cfg.LLMTimeout, logger)
	}
	if err != nil {
		logger.Fatal("failed to create llm backend",
			zap.String("backend", cfg.LLMBackend),
			zap.Error(err))
	}

	// =========
	// Extraction + sanitization
	// =========
	extractor := file.NewExtractor(cfg.ContextCharLimit, cfg.EPUBScanBudget, cfg.InlineImages(), logger)
	sanitizer := slides.NewSanitizer(logger)

	// =========
	// HTTP server
	// =========
	generator := api.NewSlideGenerator(extractor, backend, sanitizer,
		allowedMIME, cfg.MaxUploadBytes, logger)
	server := api.NewServer(generator, cfg.AuthToken, cfg.APIUserName, cfg.AppPort, logger)

	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
