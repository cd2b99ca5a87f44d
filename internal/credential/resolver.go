package credential

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
)

// NotFoundError is returned when no browser yields cookies and no explicit
// payload was supplied. Tried records the browsers attempted, in order.
type NotFoundError struct {
	Domain string
	Tried  []browsercookie.Browser
}

func (e *NotFoundError) Error() string {
	names := make([]string, 0, len(e.Tried))
	for _, b := range e.Tried {
		names = append(names, string(b))
	}
	return fmt.Sprintf("no %s cookies found; tried browsers: %s (log in to MyFitnessPal in one of them, or set MFP_COOKIES)",
		e.Domain, strings.Join(names, ", "))
}

// Resolver locates a session credential. The explicit payload path wins; the
// browser fallback chain is consulted only when no payload is configured.
type Resolver struct {
	// Payload is the raw serialized cookie value (typically MFP_COOKIES).
	Payload string

	// Readers is the browser priority order. Defaults to
	// browsercookie.DefaultReaders.
	Readers []browsercookie.Reader

	// Domain defaults to DefaultDomain.
	Domain string

	// Timeout bounds per-browser OS helper calls.
	Timeout time.Duration

	Logger *slog.Logger
}

// Resolve produces a credential or fails with *NotFoundError (browser chain
// exhausted) or a payload parse error. Per-browser read failures are logged
// as warnings and skipped; they never abort the chain.
func (r *Resolver) Resolve(ctx context.Context) (*Credential, error) {
	domain := r.Domain
	if domain == "" {
		domain = DefaultDomain
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(r.Payload) != "" {
		cookies, err := ParsePayload(r.Payload, domain)
		if err != nil {
			return nil, fmt.Errorf("explicit cookie payload: %w", err)
		}
		logger.Debug("resolved credential from explicit payload", "cookies", len(cookies))
		return &Credential{Cookies: cookies, Source: SourceEnvironment}, nil
	}

	readers := r.Readers
	if len(readers) == 0 {
		readers = browsercookie.DefaultReaders()
	}

	opts := browsercookie.Options{Timeout: r.Timeout}
	tried := make([]browsercookie.Browser, 0, len(readers))
	for _, reader := range readers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := reader.Browser()
		tried = append(tried, b)

		cookies, warnings, err := reader.Read(ctx, domain, opts)
		for _, w := range warnings {
			logger.Debug("browser cookie read", "browser", b, "warning", w)
		}
		if err != nil {
			logger.Warn("browser cookie read failed", "browser", b, "error", err)
			continue
		}
		if len(cookies) == 0 {
			continue
		}

		logger.Debug("resolved credential from browser", "browser", b, "cookies", len(cookies))
		return &Credential{Cookies: cookies, Source: string(b)}, nil
	}

	return nil, &NotFoundError{Domain: domain, Tried: tried}
}
