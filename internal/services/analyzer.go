package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

const (
	DefaultAnalysisAttempts  = 3
	DefaultAnalysisBaseDelay = time.Second
	DefaultTemperature       = 0.1
)

// TextGenerator is the part of the model client the analyzer needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type AnalyzerOptions struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Temperature float32
	Locator     JSONLocator
	Sleep       SleepFunc
}

type StructuredAnalyzer interface {
	// Analyze returns nil when every attempt failed or ctx was cancelled.
	Analyze(ctx context.Context, resumeText string) *models.ResumeRecord
}

type structuredAnalyzer struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	locator       JSONLocator
	sleep         SleepFunc
	maxAttempts   int
	baseDelay     time.Duration
	temperature   float32
}

func NewStructuredAnalyzer(generator TextGenerator, opts AnalyzerOptions) StructuredAnalyzer {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultAnalysisAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultAnalysisBaseDelay
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.Locator == nil {
		opts.Locator = BraceSpanLocator{}
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	return &structuredAnalyzer{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		locator:       opts.Locator,
		sleep:         opts.Sleep,
		maxAttempts:   opts.MaxAttempts,
		baseDelay:     opts.BaseDelay,
		temperature:   opts.Temperature,
	}
}

// Analyze implements StructuredAnalyzer. Attempt n waits n*baseDelay before the
// next one.
func (a *structuredAnalyzer) Analyze(ctx context.Context, resumeText string) *models.ResumeRecord {
	prompt := a.promptBuilder.BuildResumeExtractionPrompt(resumeText)

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		log.Printf("🤖 Attempting AI analysis (attempt %d/%d)", attempt, a.maxAttempts)

		record, err := a.attempt(ctx, prompt)
		if err == nil {
			log.Println("✅ AI analysis completed successfully")
			return record
		}

		log.Printf("⚠️  AI analysis attempt %d failed: %v", attempt, err)

		if attempt == a.maxAttempts {
			break
		}

		if err := a.sleep(ctx, time.Duration(attempt)*a.baseDelay); err != nil {
			log.Printf("🛑 AI analysis abandoned: %v", err)
			return nil
		}
	}

	log.Println("❌ All AI analysis attempts failed")
	return nil
}

func (a *structuredAnalyzer) attempt(ctx context.Context, prompt string) (*models.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response, err := a.generator.GenerateText(ctx, prompt, a.temperature)
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}
	if response == "" {
		return nil, fmt.Errorf("empty response from AI")
	}

	span, err := a.locator.Locate(response)
	if err != nil {
		return nil, err
	}

	obj, err := ParseResumeObject(span)
	if err != nil {
		return nil, err
	}

	return RepairRecord(obj), nil
}
