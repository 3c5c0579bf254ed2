package services

import (
	"context"
	"sync"
	"time"
)

const validModelResponse = `Sure! Here is the extracted data:
{
  "name": "Jane Doe",
  "email": "jane.doe@example.com",
  "phone": "+1 555 0100",
  "linkedin_url": "https://linkedin.com/in/janedoe",
  "portfolio_url": null,
  "summary": "Backend engineer focused on Go services.",
  "work_experience": [
    {"role": "Senior Engineer", "company": "Acme", "duration": "2019-2024", "description": ["Built billing", "Led migrations"]}
  ],
  "education": [{"degree": "BSc Computer Science", "institution": "State University", "graduation_year": 2016}],
  "technical_skills": ["Go", "PostgreSQL", "Go"],
  "soft_skills": ["Mentoring"],
  "projects": [{"name": "ledger", "description": "Double-entry ledger", "technologies": ["Go", "gRPC"]}],
  "certifications": [{"name": "CKA", "issuer": "CNCF", "date": "2022"}],
  "resume_rating": 8,
  "improvement_areas": "Quantify impact in each role.",
  "upskill_suggestions": ["Kubernetes operators"]
}
Hope this helps.`

// scriptedGenerator replays responses in order; an error entry fails that call.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	temps     []float32
}

func (g *scriptedGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.calls
	g.calls++
	g.temps = append(g.temps, temperature)

	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return g.responses[len(g.responses)-1], nil
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// recordingSleep records requested delays without waiting.
type recordingSleep struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleep) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

func newTestAnalyzer(gen TextGenerator, sleeper *recordingSleep) StructuredAnalyzer {
	return NewStructuredAnalyzer(gen, AnalyzerOptions{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Sleep:       sleeper.Sleep,
	})
}
