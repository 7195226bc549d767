// Command sahayak-ask runs one question through the query pipeline
// in-process and prints the response as JSON. Useful for smoke testing
// a deployment without the HTTP surface
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"sahayak/internal/adapters/gemini"
	"sahayak/internal/adapters/intent"
	"sahayak/internal/adapters/vectorpg"
	"sahayak/internal/modkit"
	"sahayak/internal/modkit/module"
	"sahayak/internal/platform/cache"
	"sahayak/internal/platform/config"
	"sahayak/internal/platform/logger"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/platform/store"
	querydom "sahayak/internal/services/query/domain"

	answermod "sahayak/internal/services/answer/module"
	eligmod "sahayak/internal/services/eligibility/module"
	querymod "sahayak/internal/services/query/module"
	retrievalmod "sahayak/internal/services/retrieval/module"
)

func main() {
	var (
		text = flag.String("text", "", "question text")
		lang = flag.String("lang", "", "BCP 47 language tag, defaults to en")
		user = flag.String("user", "", "user id for eligibility checks")
	)
	flag.Parse()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	if *text == "" {
		l.Panic().Msg("-text is required")
	}

	root := config.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, store.FromConf(root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()

	resCfg := root.Prefix("CORE_RESILIENCE_")
	breakers := resilience.NewBreakerSet(
		resCfg.MayInt("BREAKER_THRESHOLD", 5),
		resCfg.MayDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
	)
	writes := resilience.NewWriteQueue(resilience.QueuePolicy{
		MaxAttempts: resCfg.MayInt("WRITE_ATTEMPTS", 5),
		BaseDelay:   resCfg.MayDuration("WRITE_BASE_DELAY", 250*time.Millisecond),
	}, nil)
	go func() { _ = writes.Run(ctx) }()

	deps := modkit.Deps{
		Log:      *l,
		Cfg:      root,
		PG:       st.PG,
		CH:       st.CH,
		Cache:    cache.New(),
		Breakers: breakers,
		Writes:   writes,
	}

	gen, err := gemini.New(ctx, gemini.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("gemini client failed")
	}

	retrieval := retrievalmod.New(deps, gen, vectorpg.New(st.PG))
	answer := answermod.New(deps, gen)
	eligibility := eligmod.New(deps)
	query := querymod.New(deps, querymod.Capabilities{
		Retriever: module.MustPortsOf[retrievalmod.Ports](retrieval).Retriever,
		Assembler: module.MustPortsOf[answermod.Ports](answer).Assembler,
		Checker:   module.MustPortsOf[eligmod.Ports](eligibility).Checker,
		Translate: gen,
		Intent:    intent.New(gen),
	})

	ask := module.MustPortsOf[querymod.Ports](query).Orchestrator
	resp, err := ask.Ask(ctx, querydom.Request{
		UserID:   *user,
		Text:     *text,
		Language: *lang,
	})
	if err != nil {
		l.Panic().Err(err).Msg("query failed")
	}

	// give the write queue a beat to archive the record
	time.Sleep(200 * time.Millisecond)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		l.Panic().Err(err).Msg("encode failed")
	}
}
