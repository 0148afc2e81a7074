package assistant

import (
	"context"
	"log/slog"
	"strings"
)

// Assistant answers questions about the loaded transcripts.
type Assistant struct {
	corpus    Corpus
	generator Generator
	config    *Config
	logger    *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithConfig sets the context-selection configuration.
func WithConfig(config *Config) Option {
	return func(a *Assistant) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssistant creates an assistant over the given corpus and generator.
func NewAssistant(corpus Corpus, generator Generator, opts ...Option) (*Assistant, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	a := &Assistant{
		corpus:    corpus,
		generator: generator,
		config:    DefaultConfig(),
		logger:    slog.Default().With("component", "assistant"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Ask answers a question against the current corpus. The raw model
// output is preserved on the Answer alongside the formatted HTML.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQuestionRequired
	}

	transcripts := a.corpus.Transcripts()
	if len(transcripts) == 0 {
		return nil, ErrNoTranscripts
	}

	selected := a.selectTranscripts(question, transcripts)
	prompt := buildPrompt(question, buildContext(selected), len(selected))

	a.logger.Debug("asking generator",
		"question", question,
		"transcripts", len(selected),
		"prompt_chars", len(prompt))

	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Answer{
		HTML:                FormatResponse(raw),
		Raw:                 raw,
		TranscriptsAnalyzed: len(selected),
		TotalTranscripts:    len(transcripts),
	}, nil
}
