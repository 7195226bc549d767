// Package service implements the generation assembler
package service

import (
	"context"
	"time"

	"sahayak/internal/core/grounding"
	"sahayak/internal/core/langtag"
	"sahayak/internal/core/prompt"
	"sahayak/internal/platform/cache"
	"sahayak/internal/platform/logger"
	"sahayak/internal/platform/resilience"
	pstrings "sahayak/internal/platform/strings"
	"sahayak/internal/services/answer/domain"
)

// cache namespace for delivered answers, keyed like retrieval
const nsAnswers = "answers"

// insufficient-information fallbacks per base language; the orchestrator
// localizes further when a translator is available
var fallbackText = map[string]string{
	"en": "I do not have enough verified information to answer that. Please ask about a specific scheme or try again later.",
	"hi": "मेरे पास इसका सत्यापित उत्तर देने के लिए पर्याप्त जानकारी नहीं है। कृपया किसी विशेष योजना के बारे में पूछें या बाद में प्रयास करें।",
}

// Config for the assembler
type Config struct {
	AnswerTTL time.Duration
	Threshold float64
}

// Service implements domain.AssemblerPort
type Service struct {
	gen      domain.Generator
	cache    *cache.Cache
	breakers *resilience.BreakerSet
	retry    resilience.RetryPolicy
	cfg      Config
}

// New constructs the assembler
func New(gen domain.Generator, c *cache.Cache, breakers *resilience.BreakerSet,
	retry resilience.RetryPolicy, cfg Config,
) *Service {
	if cfg.AnswerTTL <= 0 {
		cfg.AnswerTTL = 24 * time.Hour
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = grounding.DefaultThreshold
	}
	return &Service{gen: gen, cache: c, breakers: breakers, retry: retry, cfg: cfg}
}

func answerKey(queryText, language string) string {
	return pstrings.Squash(queryText) + "|" + language
}

// Fallback returns the templated insufficient-information answer
func Fallback(language string) domain.Answer {
	text, ok := fallbackText[langtag.Base(language)]
	if !ok {
		text = fallbackText["en"]
	}
	return domain.Answer{Text: text, Language: language, Fallback: true}
}

// Assemble implements domain.AssemblerPort.
//
// The produced answer must overlap the retrieved context; one stricter
// regeneration is attempted before falling back. A generation failure
// after retries serves a cached prior answer when one exists
func (s *Service) Assemble(ctx context.Context, queryText string, docs []domain.ContextDoc, language string) (domain.Answer, error) {
	texts := make([]string, len(docs))
	pdocs := make([]prompt.Doc, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
		pdocs[i] = prompt.Doc{SchemeID: d.SchemeID, Text: d.Text}
	}

	text, err := s.generate(ctx, prompt.Build(queryText, pdocs, language, false))
	if err != nil {
		return s.recover(ctx, queryText, language, err), nil
	}

	if !grounding.Grounded(text, texts, s.cfg.Threshold) {
		logger.C(ctx).Warn().Msg("answer failed grounding, regenerating strict")
		text, err = s.generate(ctx, prompt.Build(queryText, pdocs, language, true))
		if err != nil {
			return s.recover(ctx, queryText, language, err), nil
		}
		if !grounding.Grounded(text, texts, s.cfg.Threshold) {
			logger.C(ctx).Warn().Msg("strict regeneration still ungrounded, falling back")
			return Fallback(language), nil
		}
	}

	ans := domain.Answer{Text: text, Language: language, Grounded: true}
	s.cache.Put(nsAnswers, answerKey(queryText, language), ans, s.cfg.AnswerTTL)
	return ans, nil
}

func (s *Service) generate(ctx context.Context, p string) (string, error) {
	var out string
	err := resilience.Retry(ctx, s.retry, func(ctx context.Context) error {
		return s.breakers.For("generate").Do(ctx, func(ctx context.Context) error {
			var err error
			out, err = s.gen.Generate(ctx, p)
			return err
		})
	})
	return out, err
}

// recover maps an exhausted or short-circuited generation into the best
// degraded answer available
func (s *Service) recover(ctx context.Context, queryText, language string, cause error) domain.Answer {
	logger.C(ctx).Error().Err(cause).Msg("generation unavailable, degrading")
	if v, ok := s.cache.Get(nsAnswers, answerKey(queryText, language)); ok {
		if prior, ok := v.(domain.Answer); ok {
			prior.FromCache = true
			return prior
		}
	}
	return Fallback(language)
}
