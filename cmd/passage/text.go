package main

import (
	"net/http"
	"time"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/internal/cache"
	"github.com/FocuswithJustin/passage/internal/logging"
	"github.com/FocuswithJustin/passage/internal/text"
)

// TextCmd fetches passage text.
type TextCmd struct {
	Citation      string  `arg:"" help:"Citation text"`
	APIKey        string  `name:"api-key" env:"ESV_API_KEY" help:"ESV API key"`
	BaseURL       string  `name:"esv-url" default:"https://api.esv.org" hidden:"" help:"ESV API base URL"`
	References    bool    `name:"references" help:"Prefix each passage with its reference heading"`
	MaxVerses     int     `name:"max-verses" default:"500" env:"PASSAGE_MAX_VERSES" help:"Verse budget per passage"`
	MaxProportion float64 `name:"max-proportion" default:"0.5" env:"PASSAGE_MAX_PROPORTION" help:"Book proportion budget per passage"`
}

func (c *TextCmd) Run(g *Globals) error {
	if c.APIKey == "" {
		return errors.NewValidation("api-key", "set --api-key or ESV_API_KEY")
	}
	coll, err := g.parseCitation(c.Citation)
	if err != nil {
		return err
	}

	opts := text.Options{
		IncludeReferences: c.References,
		MaxVerses:         c.MaxVerses,
		MaxProportion:     c.MaxProportion,
	}
	src := &text.ESV{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
	svc := text.NewService(src, cache.Limits{ConsecutiveVerses: c.MaxVerses})

	out, truncated, err := svc.Collection(g.ctx, coll, opts)
	if err != nil {
		return err
	}
	st := svc.CacheStats()
	logging.Debug("text cache", "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions, "size", st.Size)

	g.printf("%s\n", out)
	if truncated {
		g.printf("\n(truncated to fit the %d-verse / %g-book budget)\n", c.MaxVerses, c.MaxProportion)
	}
	return nil
}
