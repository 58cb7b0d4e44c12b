// Copyright 2025 Hyphal Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package mycelia ties the pieces together: a markdown vault, the BM25
// search index over it, retrieval-augmented chat, persistent chat
// history, and background knowledge extraction back into the vault.
package mycelia

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/hyphal/mycelia/ai"
	"github.com/hyphal/mycelia/core"
	"github.com/hyphal/mycelia/ingestion"
	"github.com/hyphal/mycelia/rag"
	"github.com/hyphal/mycelia/search"
	"github.com/hyphal/mycelia/storage"
	storagebadger "github.com/hyphal/mycelia/storage/badger"
	"github.com/hyphal/mycelia/vault"
)

// ErrProviderRequired is returned when an AI provider is not provided.
var ErrProviderRequired = errors.New("AI provider required")

// defaultHistoryWindow is how many prior messages are replayed to the
// model on each chat turn.
const defaultHistoryWindow = 20

// Assistant is the top-level handle. It owns the vault, the search
// cache, the chat history store, and the extraction pipeline.
type Assistant struct {
	vault          *vault.Vault
	cache          *search.Cache
	builder        *rag.Builder
	backend        *storagebadger.Backend
	chatRepo       storage.ChatRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.Provider
	pipeline       *ingestion.Pipeline
	watcher        *vault.Watcher
	historyWindow  int
	logger         *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	journalFormat string
	perspective   ingestion.Perspective
	historyWindow int
	watch         bool
	inMemory      bool
	logger        *slog.Logger
}

// WithJournalFormat sets the journal filename format used when pinning
// today's journal into chat context.
func WithJournalFormat(format string) AssistantOption {
	return func(o *assistantOptions) {
		o.journalFormat = format
	}
}

// WithPerspective sets the voice extracted notes are written in.
func WithPerspective(perspective ingestion.Perspective) AssistantOption {
	return func(o *assistantOptions) {
		o.perspective = perspective
	}
}

// WithHistoryWindow sets how many prior messages accompany each chat turn.
func WithHistoryWindow(n int) AssistantOption {
	return func(o *assistantOptions) {
		if n > 0 {
			o.historyWindow = n
		}
	}
}

// WithWatcher enables the filesystem watcher, so edits made outside the
// assistant invalidate the search index automatically.
func WithWatcher() AssistantOption {
	return func(o *assistantOptions) {
		o.watch = true
	}
}

// WithInMemoryStorage keeps chat history in memory instead of on disk.
func WithInMemoryStorage() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAssistant opens the vault at root and wires up search, chat
// history, and extraction. Chat history lives under .mycelia/db inside
// the vault unless WithInMemoryStorage is set.
func NewAssistant(root string, provider ai.Provider, opts ...AssistantOption) (*Assistant, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	options := &assistantOptions{
		journalFormat: vault.DefaultJournalFormat,
		perspective:   ingestion.PerspectiveSecond,
		historyWindow: defaultHistoryWindow,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	v, err := vault.New(root, vault.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := v.EnsureStructure(); err != nil {
		return nil, err
	}

	cache, err := search.NewCache(v, search.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	builder, err := rag.NewBuilder(cache,
		rag.WithJournalFormat(options.journalFormat),
		rag.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	dbPath := ""
	if !options.inMemory {
		dbPath = filepath.Join(v.Root(), ".mycelia", "db")
	}
	backend, err := storagebadger.OpenBackend(dbPath, options.inMemory)
	if err != nil {
		return nil, err
	}

	chatRepo := storagebadger.NewChatRepository(backend)
	checkpointRepo := storagebadger.NewCheckpointRepository(backend)

	pipeline, err := ingestion.NewPipeline(chatRepo, checkpointRepo, v, provider.Generator(),
		ingestion.WithInvalidator(cache),
		ingestion.WithPerspective(options.perspective),
		ingestion.WithLogger(logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	a := &Assistant{
		vault:          v,
		cache:          cache,
		builder:        builder,
		backend:        backend,
		chatRepo:       chatRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		pipeline:       pipeline,
		historyWindow:  options.historyWindow,
		logger:         logger,
	}

	if options.watch {
		a.watcher = vault.NewWatcher(v, cache.Invalidate, vault.WithWatcherLogger(logger))
		if err := a.watcher.Start(context.Background()); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

// Chat handles one conversational turn: the user message is persisted,
// vault context is retrieved for the query, the model responds with
// recent history in scope, and the reply is persisted. Knowledge
// extraction runs in the background afterwards.
func (a *Assistant) Chat(ctx context.Context, content string) (string, error) {
	userMsg := core.NewUserMessage(content)
	if _, err := a.chatRepo.AddMessages(ctx, userMsg); err != nil {
		return "", err
	}

	systemPrompt := a.builder.SystemPrompt(ctx, content)

	history, err := a.recentHistory(ctx)
	if err != nil {
		return "", err
	}

	reply, err := a.provider.Generator().Generate(ctx, history, systemPrompt)
	if err != nil {
		return "", err
	}

	assistantMsg := core.NewAssistantMessage(reply)
	if _, err := a.chatRepo.AddMessages(ctx, assistantMsg); err != nil {
		return "", err
	}

	a.pipeline.ExtractAsync()

	return reply, nil
}

// Search queries the vault index directly.
func (a *Assistant) Search(ctx context.Context, query string, limit int) ([]search.Result, error) {
	index, err := a.cache.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if index == nil {
		return nil, nil
	}
	return index.Search(query, limit), nil
}

// Context assembles the vault context block for a query, as it would be
// injected into the system prompt.
func (a *Assistant) Context(ctx context.Context, query string) (string, error) {
	return a.builder.Build(ctx, query)
}

// History returns the most recent chat messages, newest first.
func (a *Assistant) History(ctx context.Context, limit int) ([]*core.ChatMessage, error) {
	return a.chatRepo.RecentMessages(ctx, limit)
}

// Extract runs a synchronous extraction pass over recent history.
func (a *Assistant) Extract(ctx context.Context) error {
	return a.pipeline.Extract(ctx)
}

// InvalidateIndex drops the cached search index; the next query rebuilds it.
func (a *Assistant) InvalidateIndex() {
	a.cache.Invalidate()
}

// Vault exposes the underlying vault.
func (a *Assistant) Vault() *vault.Vault {
	return a.vault
}

// Close stops the watcher and releases all resources.
func (a *Assistant) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.pipeline.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.chatRepo.Close(); err != nil {
		a.logger.Error("error closing chat repository", "err", err)
		return err
	}
	if err := a.checkpointRepo.Close(); err != nil {
		a.logger.Error("error closing checkpoint repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// recentHistory loads the trailing conversation in model order.
func (a *Assistant) recentHistory(ctx context.Context) ([]ai.Message, error) {
	recent, err := a.chatRepo.RecentMessages(ctx, a.historyWindow)
	if err != nil {
		return nil, err
	}

	messages := make([]ai.Message, len(recent))
	for i, m := range recent {
		role := ai.RoleUser
		if m.Role == core.RoleAssistant {
			role = ai.RoleAssistant
		}
		messages[len(recent)-1-i] = ai.Message{Role: role, Content: m.Content}
	}
	return messages, nil
}
