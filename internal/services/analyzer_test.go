package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestAnalyzeParsesResponseWithSurroundingProse(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{validModelResponse}}
	sleeper := &recordingSleep{}

	record := newTestAnalyzer(gen, sleeper).Analyze(context.Background(), richResumeText)
	if record == nil {
		t.Fatal("expected record")
	}
	if record.Name == nil || *record.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %v", record.Name)
	}
	if record.PortfolioURL != nil {
		t.Fatalf("expected null portfolio url, got %v", *record.PortfolioURL)
	}
	if record.ResumeRating != 8 {
		t.Fatalf("expected rating 8, got %d", record.ResumeRating)
	}
	if !reflect.DeepEqual(record.TechnicalSkills, []string{"Go", "PostgreSQL", "Go"}) {
		t.Fatalf("expected skills in order with duplicates, got %v", record.TechnicalSkills)
	}
	if record.Education[0].GraduationYear != "2016" {
		t.Fatalf("expected numeric year to become a string, got %q", record.Education[0].GraduationYear)
	}
	if gen.callCount() != 1 || len(sleeper.delays) != 0 {
		t.Fatalf("expected a single attempt without waiting, got calls=%d delays=%v", gen.callCount(), sleeper.delays)
	}
	if gen.temps[0] != DefaultTemperature {
		t.Fatalf("expected temperature %v, got %v", float32(DefaultTemperature), gen.temps[0])
	}
}

func TestAnalyzeIsIdempotentForIdenticalResponses(t *testing.T) {
	response := `{"name":"Jane","email":null,"technical_skills":"Go","soft_skills":["Calm"],"resume_rating":"11"}`

	first := newTestAnalyzer(&scriptedGenerator{responses: []string{response}}, &recordingSleep{}).Analyze(context.Background(), "text")
	second := newTestAnalyzer(&scriptedGenerator{responses: []string{response}}, &recordingSleep{}).Analyze(context.Background(), "text")

	if first == nil || second == nil {
		t.Fatal("expected records")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical records:\n%+v\n%+v", first, second)
	}
	if len(first.TechnicalSkills) != 0 || first.ResumeRating != DefaultResumeRating {
		t.Fatalf("expected repaired record, got %+v", first)
	}
}

func TestAnalyzeRetriesWithIncreasingDelays(t *testing.T) {
	gen := &scriptedGenerator{
		errs:      []error{errors.New("503 unavailable"), errors.New("connection reset")},
		responses: []string{"", "", validModelResponse},
	}
	sleeper := &recordingSleep{}

	record := newTestAnalyzer(gen, sleeper).Analyze(context.Background(), richResumeText)
	if record == nil {
		t.Fatal("expected third attempt to succeed")
	}
	if gen.callCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", gen.callCount())
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if !reflect.DeepEqual(sleeper.delays, want) {
		t.Fatalf("expected delays %v, got %v", want, sleeper.delays)
	}
}

func TestAnalyzeReturnsNilWhenExhausted(t *testing.T) {
	fail := errors.New("model down")
	gen := &scriptedGenerator{errs: []error{fail, fail, fail}, responses: []string{""}}
	sleeper := &recordingSleep{}

	if record := newTestAnalyzer(gen, sleeper).Analyze(context.Background(), richResumeText); record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
	if gen.callCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", gen.callCount())
	}
	if len(sleeper.delays) != 2 {
		t.Fatalf("expected no wait after the final attempt, got %v", sleeper.delays)
	}
}

func TestAnalyzeTreatsUnparseableResponsesAsFailedAttempts(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"I could not find any resume details.",
		`{"name": "Jane", "email": }`,
		`{"a":1} {"b":2}`,
	}}

	if record := newTestAnalyzer(gen, &recordingSleep{}).Analyze(context.Background(), "text"); record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
	if gen.callCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", gen.callCount())
	}
}

func TestAnalyzeStopsAtBackoffWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &scriptedGenerator{responses: []string{"no json"}}
	sleeper := &recordingSleep{}

	analyzer := NewStructuredAnalyzer(gen, AnalyzerOptions{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return sleeper.Sleep(ctx, d)
		},
	})

	if record := analyzer.Analyze(ctx, "text"); record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
	if gen.callCount() != 1 {
		t.Fatalf("expected retries to stop after cancellation, got %d calls", gen.callCount())
	}
}

func TestSleepContextReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepContext(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("expected sleep to return immediately")
	}
}

func TestPromptEmbedsResumeAndSchema(t *testing.T) {
	prompt := NewPromptBuilder().BuildResumeExtractionPrompt("  Jane Doe, Go engineer  ")

	for _, want := range []string{`"""
Jane Doe, Go engineer
"""`, `"upskill_suggestions": ["string"]`, "Return ONLY a valid JSON object"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}
