package classify

import (
	"context"
	"flag"
	"time"

	"civicmap/backend/metrics"
	"civicmap/backend/report"

	"github.com/apex/log"
)

var (
	classifierURL       = flag.String("classifier_url", "", "Remote image classifier endpoint. Empty disables the remote tier.")
	classifierTimeoutMs = flag.Int("classifier_timeout_ms", 5000, "Remote classifier request timeout in milliseconds.")
)

// Tier is one stage of the fallback chain. A result whose confidence
// reaches Accept is final; a weaker result is kept as the best available
// signal unless a later tier beats it to acceptance.
type Tier struct {
	Provider string
	Accept   float64
}

// DefaultTiers is the canonical chain order and thresholds.
func DefaultTiers() []Tier {
	return []Tier{
		{Provider: report.ProviderRemote, Accept: 0.6},
		{Provider: report.ProviderKeyword, Accept: 0.8},
		{Provider: report.ProviderDefault, Accept: 0},
	}
}

// Pipeline turns free text plus optional image bytes into exactly one
// classification. It is total: it never returns an error.
type Pipeline struct {
	remote *RemoteClient
	tiers  []Tier
}

// NewPipeline builds a pipeline with an explicit remote client (nil disables
// the remote tier) and tier chain.
func NewPipeline(remote *RemoteClient, tiers []Tier) *Pipeline {
	return &Pipeline{remote: remote, tiers: tiers}
}

// NewDefaultPipeline builds the flag-configured pipeline.
func NewDefaultPipeline() *Pipeline {
	var remote *RemoteClient
	if *classifierURL != "" {
		remote = NewRemoteClient(*classifierURL, time.Duration(*classifierTimeoutMs)*time.Millisecond)
	}
	return NewPipeline(remote, DefaultTiers())
}

// Classify runs the tiers in order. Remote failures are soft: they are
// logged and the chain continues. If no tier reaches its acceptance
// threshold the best sub-threshold signal wins, and with no signal at all
// the default tier answers.
func (p *Pipeline) Classify(ctx context.Context, image []byte, title, description string) report.Classification {
	var best *report.Classification

	for _, tier := range p.tiers {
		if tier.Provider == report.ProviderDefault && best != nil {
			// A weak signal from an earlier tier still beats no signal.
			break
		}
		result, ok := p.runTier(ctx, tier, image, title, description)
		if !ok {
			continue
		}
		if result.Confidence >= tier.Accept {
			metrics.ClassificationsTotal.WithLabelValues(result.Provider).Inc()
			return result
		}
		if best == nil {
			r := result
			best = &r
		}
	}

	if best != nil {
		metrics.ClassificationsTotal.WithLabelValues(best.Provider).Inc()
		return *best
	}

	// Unreachable with the default tier present; kept as a hard floor.
	fallback := defaultResult()
	metrics.ClassificationsTotal.WithLabelValues(fallback.Provider).Inc()
	return fallback
}

func (p *Pipeline) runTier(ctx context.Context, tier Tier, image []byte, title, description string) (report.Classification, bool) {
	switch tier.Provider {
	case report.ProviderRemote:
		if p.remote == nil || len(image) == 0 {
			return report.Classification{}, false
		}
		result, err := p.remote.Classify(ctx, image, title, description)
		if err != nil {
			log.WithError(err).Warn("remote classifier unavailable, falling through")
			return report.Classification{}, false
		}
		return result, true
	case report.ProviderKeyword:
		return classifyKeywords(title, description)
	case report.ProviderDefault:
		return defaultResult(), true
	}
	return report.Classification{}, false
}

func defaultResult() report.Classification {
	return report.Classification{
		Category:   report.CategoryOther,
		Confidence: 0.4,
		Reason:     "no signal found",
		Provider:   report.ProviderDefault,
	}
}
