package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"sahayak/internal/adapters/gemini"
	"sahayak/internal/adapters/intent"
	"sahayak/internal/adapters/vectorpg"
	"sahayak/internal/modkit"
	"sahayak/internal/modkit/httpkit"
	"sahayak/internal/modkit/module"
	"sahayak/internal/platform/cache"
	"sahayak/internal/platform/config"
	"sahayak/internal/platform/logger"
	phttp "sahayak/internal/platform/net/http"
	"sahayak/internal/platform/net/http/bind"
	"sahayak/internal/platform/net/middleware"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/platform/store"

	apimod "sahayak/internal/services/api/module"
	answermod "sahayak/internal/services/answer/module"
	eligmod "sahayak/internal/services/eligibility/module"
	querymod "sahayak/internal/services/query/module"
	retrievalmod "sahayak/internal/services/retrieval/module"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()
	bind.Init()

	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConf(root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Panic().Err(err).Msg("store guard failed")
	}

	c := cache.New()
	go c.RunSweeper(ctx, root.MayDuration("CORE_CACHE_SWEEP_INTERVAL", time.Minute))

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
		Cache:    c,
		Breakers: breakers,
		Writes:   writes,
	}

	gen, err := gemini.New(ctx, gemini.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("gemini client failed")
	}
	index := vectorpg.New(st.PG)

	retrieval := retrievalmod.New(deps, gen, index)
	answer := answermod.New(deps, gen)
	eligibility := eligmod.New(deps)
	query := querymod.New(deps, querymod.Capabilities{
		Retriever: module.MustPortsOf[retrievalmod.Ports](retrieval).Retriever,
		Assembler: module.MustPortsOf[answermod.Ports](answer).Assembler,
		Checker:   module.MustPortsOf[eligmod.Ports](eligibility).Checker,
		Translate: gen,
		Intent:    intent.New(gen),
	})
	api := apimod.New(deps, module.MustPortsOf[querymod.Ports](query).Orchestrator)

	modules := []module.Module{retrieval, answer, eligibility, query, api}

	srv := phttp.NewServer(root.Prefix("CORE_API_"))
	r := srv.Router()
	r.Use(middleware.Defaults()...)
	r.Use(middleware.AccessLog, middleware.CORS(middleware.CORSOptions{}))
	httpkit.MountUnder(r, "/v1", nil, func(sub httpkit.Router) {
		for _, m := range modules {
			m.MountRoutes(sub)
		}
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
