// Command passage builds, measures, renders and stores scripture passages.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/cite"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/core/sqlite"
	"github.com/FocuswithJustin/passage/internal/logging"
	"github.com/FocuswithJustin/passage/internal/validation"
)

const version = "0.1.0"

// Globals holds the flags shared by every command.
type Globals struct {
	Translation string `name:"translation" short:"t" default:"ESV" env:"PASSAGE_TRANSLATION" help:"Catalog (translation) id"`
	CatalogOSIS string `name:"catalog-osis" type:"existingfile" env:"PASSAGE_CATALOG_OSIS" help:"Build the --translation catalog from this OSIS file (.xml or .xml.xz)"`
	Abbr        bool   `name:"abbr" short:"a" help:"Abbreviate book names"`
	Sep         string `name:"sep" default:"-" help:"Range separator (e.g. an en-dash)"`
	LogLevel    string `name:"log-level" default:"warn" env:"PASSAGE_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat   string `name:"log-format" default:"text" env:"PASSAGE_LOG_FORMAT" help:"Log format (json, text)"`
	DB          string `name:"db" default:"passages.db" env:"PASSAGE_DB" type:"path" help:"Passage store database"`

	out io.Writer        `kong:"-"`
	ctx context.Context  `kong:"-"`
	cat *catalog.Catalog `kong:"-"`
}

// CLI defines the command-line interface for passage.
type CLI struct {
	Globals

	Render   RenderCmd   `cmd:"" help:"Render a passage reference"`
	OSIS     OSISCmd     `cmd:"" name:"osis" help:"Print the OSIS identifier of a passage"`
	Count    CountCmd    `cmd:"" help:"Count verses in a passage"`
	Truncate TruncateCmd `cmd:"" help:"Shorten a passage to a verse or proportion budget"`
	Extend   ExtendCmd   `cmd:"" help:"Lengthen a passage to a verse or proportion minimum"`
	Shift    ShiftCmd    `cmd:"" help:"Move one end of a passage by chapters and verses"`
	Parse    ParseCmd    `cmd:"" help:"Parse a citation such as \"Gen 1:1-3, 5; Exod 2\""`
	Catalog  CatalogCmd  `cmd:"" help:"Catalog (versification) information"`
	Store    StoreGroup  `cmd:"" help:"Saved passages"`
	Text     TextCmd     `cmd:"" help:"Fetch passage text from the ESV API"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// catalog resolves --translation, loading --catalog-osis first if given.
func (g *Globals) catalog() (*catalog.Catalog, error) {
	if g.cat != nil {
		return g.cat, nil
	}
	if g.CatalogOSIS != "" {
		if err := validation.ValidatePath(g.CatalogOSIS); err != nil {
			return nil, errors.NewValidation("catalog-osis", err.Error())
		}
		c, err := catalog.OpenOSIS(g.Translation, g.CatalogOSIS)
		if err != nil {
			return nil, err
		}
		if err := catalog.Register(c); err != nil {
			return nil, err
		}
		logging.Info("catalog loaded", "translation", c.ID(), "path", g.CatalogOSIS, "fingerprint", c.Fingerprint())
		g.cat = c
		return c, nil
	}
	c, err := catalog.ForTranslation(g.Translation)
	if err != nil {
		return nil, err
	}
	g.cat = c
	return c, nil
}

func (g *Globals) render(r interface{ Render(bool, string) string }) string {
	return r.Render(g.Abbr, g.Sep)
}

func (g *Globals) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
}

// parseCitation checks s and parses it against the selected catalog.
func (g *Globals) parseCitation(s string) (*passage.Collection, error) {
	if err := validation.ValidateCitation(s); err != nil {
		return nil, errors.NewValidation("citation", err.Error())
	}
	cat, err := g.catalog()
	if err != nil {
		return nil, err
	}
	return cite.Parse(cat, s)
}

// PassageArgs is the positional BOOK [NUM...] form shared by several commands.
type PassageArgs struct {
	Book string `arg:"" help:"Book name, abbreviation or code"`
	Nums []int  `arg:"" optional:"" help:"Start chapter, start verse, end chapter, end verse"`
}

func (a PassageArgs) passage(g *Globals) (passage.Passage, error) {
	cat, err := g.catalog()
	if err != nil {
		return passage.Passage{}, err
	}
	return passage.FromName(cat, a.Book, a.Nums...)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	info := sqlite.GetInfo()
	g.printf("passage version %s\n", version)
	g.printf("sqlite driver: %s (%s, %s)\n", info.DriverName, info.DriverType, info.Package)
	return nil
}

// run parses args and executes the selected command, writing to out.
func run(ctx context.Context, args []string, out io.Writer, options ...kong.Option) error {
	var cli CLI
	options = append([]kong.Option{
		kong.Name("passage"),
		kong.Description("Scripture passage toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}, options...)

	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)

	cli.out = out
	cli.ctx = ctx
	return kctx.Run(&cli.Globals)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "passage: error: %v\n", err)
		os.Exit(1)
	}
}
