// Command sahayak-index embeds scheme policy chunks and loads them into
// the vector index. It reads a JSON file of chunks per scheme, or marks
// a whole scheme inactive with -deactivate
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"sahayak/internal/adapters/gemini"
	"sahayak/internal/adapters/vectorpg"
	"sahayak/internal/platform/config"
	"sahayak/internal/platform/logger"
	"sahayak/internal/platform/store"
)

type chunkFile struct {
	SchemeID string `json:"scheme_id"`
	Chunks   []struct {
		ChunkID string `json:"chunk_id"`
		Section string `json:"section"`
		Text    string `json:"text"`
	} `json:"chunks"`
}

func main() {
	var (
		file       = flag.String("file", "", "path to a scheme chunk JSON file")
		deactivate = flag.String("deactivate", "", "scheme id to mark inactive")
	)
	flag.Parse()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	ctx := context.Background()

	cfg := store.FromConf(root)
	cfg.CH.Enabled = false
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()

	index := vectorpg.New(st.PG)

	if *deactivate != "" {
		if err := index.MarkInactive(ctx, *deactivate); err != nil {
			l.Panic().Err(err).Str("scheme_id", *deactivate).Msg("deactivate failed")
		}
		l.Info().Str("scheme_id", *deactivate).Msg("scheme marked inactive")
		return
	}

	if *file == "" {
		l.Panic().Msg("either -file or -deactivate is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		l.Panic().Err(err).Str("file", *file).Msg("read failed")
	}
	var cf chunkFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		l.Panic().Err(err).Msg("malformed chunk file")
	}
	if cf.SchemeID == "" || len(cf.Chunks) == 0 {
		l.Panic().Msg("chunk file needs a scheme_id and at least one chunk")
	}

	gen, err := gemini.New(ctx, gemini.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("gemini client failed")
	}

	embeddings := make([][]float32, 0, len(cf.Chunks))
	meta := make([]vectorpg.ChunkMeta, 0, len(cf.Chunks))
	for _, c := range cf.Chunks {
		vec, err := gen.Embed(ctx, c.Text)
		if err != nil {
			l.Panic().Err(err).Str("chunk_id", c.ChunkID).Msg("embedding failed")
		}
		embeddings = append(embeddings, vec)
		meta = append(meta, vectorpg.ChunkMeta{ChunkID: c.ChunkID, Section: c.Section, Text: c.Text})
	}

	if err := index.Upsert(ctx, cf.SchemeID, embeddings, meta); err != nil {
		l.Panic().Err(err).Str("scheme_id", cf.SchemeID).Msg("upsert failed")
	}
	l.Info().Str("scheme_id", cf.SchemeID).Int("chunks", len(cf.Chunks)).Msg("scheme indexed")
}
