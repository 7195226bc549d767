// Package service drives the per-query state machine
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"sahayak/internal/core/langtag"
	"sahayak/internal/core/rules"
	"sahayak/internal/platform/logger"
	pnet "sahayak/internal/platform/net"
	"sahayak/internal/platform/resilience"
	ansdomain "sahayak/internal/services/answer/domain"
	eligdomain "sahayak/internal/services/eligibility/domain"
	"sahayak/internal/services/query/domain"
	retrdomain "sahayak/internal/services/retrieval/domain"
)

// DefaultDeadline bounds one query end to end
const DefaultDeadline = 20 * time.Second

// Config tunes the orchestrator
type Config struct {
	Deadline time.Duration
	K        int
	Voice    string
}

// Service implements domain.OrchestratorPort. Optional capabilities
// (speech, translation, intent, eligibility) may be nil; the pipeline
// degrades to the text-only English path without them
type Service struct {
	retriever retrdomain.RetrieverPort
	assembler ansdomain.AssemblerPort
	checker   eligdomain.CheckerPort
	speech    domain.Speech
	translate domain.Translator
	intent    domain.IntentClassifier
	records   domain.RecordWriter
	breakers  *resilience.BreakerSet
	retry     resilience.RetryPolicy
	writes    *resilience.WriteQueue
	cfg       Config
	now       func() time.Time
}

// New constructs the orchestrator
func New(
	retriever retrdomain.RetrieverPort,
	assembler ansdomain.AssemblerPort,
	checker eligdomain.CheckerPort,
	speech domain.Speech,
	translate domain.Translator,
	intent domain.IntentClassifier,
	records domain.RecordWriter,
	breakers *resilience.BreakerSet,
	retry resilience.RetryPolicy,
	writes *resilience.WriteQueue,
	cfg Config,
) *Service {
	if cfg.Deadline <= 0 {
		cfg.Deadline = DefaultDeadline
	}
	return &Service{
		retriever: retriever,
		assembler: assembler,
		checker:   checker,
		speech:    speech,
		translate: translate,
		intent:    intent,
		records:   records,
		breakers:  breakers,
		retry:     retry,
		writes:    writes,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Ask implements domain.OrchestratorPort. Failure payloads the caller
// can act on (re-prompt, timeout notice) come back as normal responses
// with State Failed; only validation errors surface as errors
func (s *Service) Ask(ctx context.Context, req domain.Request) (domain.Response, error) {
	queryID := uuid.NewString()
	created := s.now().UTC()
	ctx = pnet.WithQuery(ctx, queryID)
	ctx = logger.WithQuery(ctx, queryID)
	log := logger.C(ctx)

	lang, err := langtag.Normalize(req.Language)
	if err != nil {
		return domain.Response{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline)
	defer cancel()

	q := &query{id: queryID, userID: req.UserID, language: lang, created: created, state: domain.StateReceived}

	text, ok := s.transcript(ctx, req, lang)
	if !ok {
		return s.finish(log, q, s.failed(q, domain.FailureEmptyTranscript, localized(retryPromptText, lang))), nil
	}
	q.text = text
	q.advance(domain.StateTranscriptValidated)

	english := text
	if !langtag.IsEnglish(lang) && s.translate != nil {
		english = s.toEnglish(ctx, log, text, lang)
	}

	q.advance(domain.StateRetrieving)
	docs, err := s.retriever.Retrieve(ctx, english, langtag.Default, s.cfg.K)
	switch {
	case errors.Is(err, retrdomain.ErrNoMatch):
		// nothing relevant in the corpus; generation is never invoked
		return s.finish(log, q, s.ready(q, domain.Response{Text: localized(noMatchText, lang)})), nil
	case err != nil:
		if expired(ctx) {
			return s.finish(log, q, s.failed(q, domain.FailureTimeout, localized(timeoutText, lang))), nil
		}
		log.Warn().Err(err).Msg("retrieval degraded to fallback")
		return s.finish(log, q, s.ready(q, domain.Response{Text: localized(unavailableText, lang), Fallback: true})), nil
	}

	q.advance(domain.StateGenerating)
	cdocs := make([]ansdomain.ContextDoc, 0, len(docs))
	for _, d := range docs {
		cdocs = append(cdocs, ansdomain.ContextDoc{SchemeID: d.SchemeID, Text: d.Text})
	}
	ans, err := s.assembler.Assemble(ctx, english, cdocs, langtag.Default)
	if err != nil {
		// the assembler contract is fallback-not-error; treat a
		// violation like an exhausted provider
		log.Error().Err(err).Msg("assembler returned an error")
		ans = ansdomain.Answer{Text: localized(unavailableText, lang), Fallback: true}
	}
	if expired(ctx) {
		return s.finish(log, q, s.failed(q, domain.FailureTimeout, localized(timeoutText, lang))), nil
	}

	answerText := ans.Text
	if !langtag.IsEnglish(lang) && s.translate != nil {
		answerText = s.fromEnglish(ctx, log, answerText, lang)
	}

	resp := domain.Response{
		Text:      answerText,
		Grounded:  ans.Grounded,
		FromCache: ans.FromCache,
		Fallback:  ans.Fallback,
	}

	if outcome := s.eligibility(ctx, log, q, english); outcome != nil {
		resp.Eligibility = outcome
		if outcome.Eligible {
			resp.Text += "\n\n" + localized(guidanceText, lang)
		}
	}
	if expired(ctx) {
		return s.finish(log, q, s.failed(q, domain.FailureTimeout, localized(timeoutText, lang))), nil
	}

	if req.WantVoice && s.speech != nil {
		resp.Audio = s.tts(ctx, log, resp.Text, lang)
	}

	return s.finish(log, q, s.ready(q, resp)), nil
}

// query is the orchestrator's mutable per-query record
type query struct {
	id       string
	userID   string
	text     string
	language string
	created  time.Time
	state    domain.State
	failure  string
}

func (q *query) advance(to domain.State) { q.state = to }

// transcript resolves the query text, transcribing audio when no text
// was supplied. ASR is never auto-retried; a failure means re-prompt
func (s *Service) transcript(ctx context.Context, req domain.Request, lang string) (string, bool) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.Audio) > 0 && s.speech != nil {
		err := s.breakers.For("speech").Do(ctx, func(ctx context.Context) error {
			var err error
			text, _, err = s.speech.ASR(ctx, req.Audio, lang)
			return err
		})
		if err != nil {
			logger.C(ctx).Warn().Err(err).Msg("transcription failed")
			return "", false
		}
		text = strings.TrimSpace(text)
	}
	return text, text != ""
}

func (s *Service) toEnglish(ctx context.Context, log *logger.Logger, text, lang string) string {
	out, err := s.doTranslate(ctx, text, lang, langtag.Default)
	if err != nil {
		log.Warn().Err(err).Msg("query translation failed, using original text")
		return text
	}
	return out
}

func (s *Service) fromEnglish(ctx context.Context, log *logger.Logger, text, lang string) string {
	out, err := s.doTranslate(ctx, text, langtag.Default, lang)
	if err != nil {
		log.Warn().Err(err).Msg("answer translation failed, serving English")
		return text
	}
	return out
}

func (s *Service) doTranslate(ctx context.Context, text, from, to string) (string, error) {
	var out string
	err := resilience.Retry(ctx, s.retry, func(ctx context.Context) error {
		return s.breakers.For("translate").Do(ctx, func(ctx context.Context) error {
			var err error
			out, err = s.translate.Translate(ctx, text, from, to)
			return err
		})
	})
	return out, err
}

// eligibility runs the conditional check branch. Any failure on this
// branch degrades to an answer without an eligibility section
func (s *Service) eligibility(ctx context.Context, log *logger.Logger, q *query, english string) *domain.EligibilityOutcome {
	if s.intent == nil || s.checker == nil || q.userID == "" {
		return nil
	}
	intent, err := s.intent.Classify(ctx, english)
	if err != nil {
		log.Warn().Err(err).Msg("intent classification failed, skipping eligibility")
		return nil
	}
	if !intent.WantsEligibility || intent.SchemeID == "" {
		return nil
	}

	q.advance(domain.StateEligibilityCheck)
	res, err := s.checker.Check(ctx, q.id, q.userID, intent.SchemeID)
	if err != nil {
		log.Warn().Err(err).Str("scheme_id", intent.SchemeID).Msg("eligibility check failed")
		return nil
	}
	return &domain.EligibilityOutcome{
		SchemeID:   res.SchemeID,
		Eligible:   res.Eligible,
		Confidence: res.Confidence,
		Reason:     explain(res),
	}
}

func explain(r rules.Result) string {
	if r.Eligible {
		return ""
	}
	if r.Reason != "" {
		return r.Reason
	}
	var failed []string
	for _, e := range r.Evaluations {
		if !e.Passed {
			failed = append(failed, e.Reason)
		}
	}
	return strings.Join(failed, "; ")
}

// tts synthesizes audio for the final text. One failure is retried,
// a second failure degrades to a text-only response
func (s *Service) tts(ctx context.Context, log *logger.Logger, text, lang string) []byte {
	var audio []byte
	policy := resilience.RetryPolicy{MaxAttempts: 2, BaseDelay: s.retry.BaseDelay}
	err := resilience.Retry(ctx, policy, func(ctx context.Context) error {
		return s.breakers.For("speech").Do(ctx, func(ctx context.Context) error {
			var err error
			audio, _, err = s.speech.TTS(ctx, text, lang, s.cfg.Voice)
			return err
		})
	})
	if err != nil {
		log.Warn().Err(err).Msg("speech synthesis failed, responding text only")
		return nil
	}
	return audio
}

func (s *Service) ready(q *query, resp domain.Response) domain.Response {
	q.advance(domain.StateResponseReady)
	resp.QueryID = q.id
	resp.State = domain.StateResponseReady
	resp.Language = q.language
	return resp
}

func (s *Service) failed(q *query, kind, text string) domain.Response {
	q.advance(domain.StateFailed)
	q.failure = kind
	return domain.Response{
		QueryID:  q.id,
		State:    domain.StateFailed,
		Failure:  kind,
		Text:     text,
		Language: q.language,
	}
}

// finish marks delivery, archives the query record and logs the outcome
func (s *Service) finish(log *logger.Logger, q *query, resp domain.Response) domain.Response {
	if resp.State == domain.StateResponseReady {
		q.advance(domain.StateDelivered)
		resp.State = domain.StateDelivered
	}
	s.archive(q)
	log.Info().
		Str("state", string(q.state)).
		Str("failure", q.failure).
		Msg("query finished")
	return resp
}

func (s *Service) archive(q *query) {
	if s.records == nil || s.writes == nil {
		return
	}
	rec := domain.Record{
		QueryID:   q.id,
		UserID:    q.userID,
		Text:      q.text,
		Language:  q.language,
		State:     q.state,
		Failure:   q.failure,
		CreatedAt: q.created,
		DoneAt:    s.now().UTC(),
	}
	s.writes.Enqueue("query_record", q.userID, func(ctx context.Context) error {
		return s.records.Write(ctx, rec)
	})
}

func expired(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
