package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/hyphal/mycelia/ai"
	"github.com/hyphal/mycelia/core"
	"github.com/hyphal/mycelia/storage"
)

const (
	// processorName identifies the extraction processor in checkpoints.
	processorName = "extraction"

	// recentWindow is how many trailing messages are considered per run.
	recentWindow = 10

	// minMessages is the minimum conversation length worth extracting from.
	minMessages = 2

	defaultPoolSize = 1
)

// IndexInvalidator is notified after the pipeline writes notes so the
// search index can drop its stale snapshot.
type IndexInvalidator interface {
	Invalidate()
}

// Pipeline orchestrates knowledge extraction from chat history into
// the vault.
type Pipeline struct {
	chatRepository       storage.ChatRepository
	checkpointRepository storage.CheckpointRepository
	store                NoteStore
	resolver             *Resolver
	generator            ai.Generator
	invalidator          IndexInvalidator
	perspective          Perspective
	pool                 *ants.Pool
	logger               *slog.Logger
	now                  func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for async extraction.
// Default is 1; extraction runs are cheap and rarely overlap.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPerspective sets the voice extracted notes are written in.
// Default is PerspectiveSecond.
func WithPerspective(perspective Perspective) Option {
	return func(p *Pipeline) error {
		if _, ok := perspectiveInstructions[perspective]; ok {
			p.perspective = perspective
		}
		return nil
	}
}

// WithInvalidator registers a search index to invalidate after writes.
func WithInvalidator(invalidator IndexInvalidator) Option {
	return func(p *Pipeline) error {
		p.invalidator = invalidator
		return nil
	}
}

// NewPipeline creates a new extraction pipeline.
func NewPipeline(
	chatRepository storage.ChatRepository,
	checkpointRepository storage.CheckpointRepository,
	store NoteStore,
	generator ai.Generator,
	opts ...Option,
) (*Pipeline, error) {
	if chatRepository == nil {
		return nil, ErrChatRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if store == nil {
		return nil, ErrNoteStoreRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chatRepository:       chatRepository,
		checkpointRepository: checkpointRepository,
		store:                store,
		resolver:             NewResolver(store),
		generator:            generator,
		perspective:          PerspectiveSecond,
		pool:                 pool,
		logger:               slog.Default(),
		now:                  time.Now,
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ExtractAsync schedules an extraction run on the worker pool.
// Errors are logged, not returned; extraction never blocks a chat turn.
func (p *Pipeline) ExtractAsync() {
	err := p.pool.Submit(func() {
		if err := p.Extract(context.Background()); err != nil {
			p.logger.Error("extraction run failed", "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error scheduling extraction", "err", err)
	}
}

// Extract runs one extraction pass over recent chat history. Runs that
// find nothing new, or nothing worth keeping, still advance the
// checkpoint so the same messages are not reprocessed.
func (p *Pipeline) Extract(ctx context.Context) error {
	recent, err := p.chatRepository.RecentMessages(ctx, recentWindow)
	if err != nil {
		return err
	}
	if len(recent) < minMessages {
		return nil
	}

	// RecentMessages returns newest first; extraction wants reading order.
	messages := make([]*core.ChatMessage, len(recent))
	for i, m := range recent {
		messages[len(recent)-1-i] = m
	}
	newest := messages[len(messages)-1]

	checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, processorName)
	if err != nil {
		return err
	}
	if checkpoint != nil && checkpoint.LastMessageId == newest.Id {
		return nil
	}

	response, err := p.generator.Generate(ctx, p.buildRequest(ctx, messages), p.systemPrompt())
	if err != nil {
		return err
	}

	if strings.TrimSpace(response) == noExtraction {
		p.logger.Debug("nothing to extract")
		return p.advanceCheckpoint(ctx, newest.Id)
	}

	today := p.now().UTC()
	notes, dropped := parseNotes(response, today)
	if dropped > 0 {
		p.logger.Warn("dropped malformed note blocks", "count", dropped)
	}

	written := 0
	for _, note := range notes {
		if err := p.writeNote(ctx, note); err != nil {
			p.logger.Error("error writing note", "path", note.RelativePath(), "err", err)
			continue
		}
		written++
	}
	p.logger.Info("extraction complete", "written", written, "dropped", dropped)

	if written > 0 && p.invalidator != nil {
		p.invalidator.Invalidate()
	}

	return p.advanceCheckpoint(ctx, newest.Id)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// buildRequest assembles the user message for the extraction call:
// the vault's current note listing (so the model can target appends)
// followed by the conversation transcript.
func (p *Pipeline) buildRequest(ctx context.Context, messages []*core.ChatMessage) []ai.Message {
	var transcript strings.Builder
	for i, m := range messages {
		if i > 0 {
			transcript.WriteString("\n\n")
		}
		speaker := "User"
		if m.Role == core.RoleAssistant {
			speaker = "Assistant"
		}
		transcript.WriteString(speaker)
		transcript.WriteString(": ")
		transcript.WriteString(m.Content)
	}

	existing, err := p.store.ListNotes(ctx)
	if err != nil {
		// Vault may not be initialized yet
		p.logger.Debug("could not list notes for extraction prompt", "err", err)
		existing = nil
	}

	var content string
	if len(existing) > 0 {
		content = fmt.Sprintf(
			"Existing notes in vault:\n%s\n\nIf a topic already has a note, use mode: append with the existing filename. Only output new body text for appends.\n\nConversation:\n%s",
			strings.Join(existing, "\n"), transcript.String())
	} else {
		content = "Conversation:\n" + transcript.String()
	}

	return []ai.Message{{Role: ai.RoleUser, Content: content}}
}

func (p *Pipeline) systemPrompt() string {
	return buildExtractionPrompt(p.perspective, p.now().UTC())
}

// writeNote merges a parsed note into the vault. Appends go under a
// dated heading; creates run through the duplicate resolver first and
// become appends when a matching note already exists.
func (p *Pipeline) writeNote(ctx context.Context, note *core.Note) error {
	appendBody := "## " + note.Date + "\n" + note.Body

	if note.Mode == core.NoteModeAppend {
		_, err := p.store.WriteNote(note.Folder, note.Filename, appendBody)
		return err
	}

	existing, err := p.resolver.Resolve(ctx, note.Folder, note.Filename)
	if err != nil {
		return err
	}
	if existing != "" {
		p.logger.Info("merging into existing note",
			"proposed", note.Filename, "existing", note.Folder+"/"+existing)
		_, err := p.store.WriteNote(note.Folder, existing, appendBody)
		return err
	}

	content := fmt.Sprintf("---\ntitle: %q\ntags: [%s]\ndate: %s\n---\n\n%s\n",
		note.Title, strings.Join(note.Tags, ", "), note.Date, note.Body)
	_, err = p.store.WriteNote(note.Folder, note.Filename, content)
	return err
}

// advanceCheckpoint records the newest processed message.
func (p *Pipeline) advanceCheckpoint(ctx context.Context, id core.ID) error {
	return p.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		Processor:     processorName,
		LastMessageId: id,
	})
}
