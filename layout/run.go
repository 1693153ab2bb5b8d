package layout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"tflow/config"
	"tflow/flow"
	"tflow/output"
	"tflow/page"
	"tflow/source"
	"tflow/state"
)

// Run is action of layout subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("layout")

	src, dst, err := arguments(cmd, log)
	if err != nil {
		return err
	}

	if name := cmd.String("oracle"); len(name) > 0 {
		if env.Cfg.Layout.Oracle, err = config.ParseOracleKind(name); err != nil {
			return fmt.Errorf("bad oracle requested: %w", err)
		}
	}
	if name := cmd.String("print"); len(name) > 0 {
		if env.Cfg.Output.Console, err = config.ParseConsoleMode(name); err != nil {
			log.Warn("Unknown console mode requested, ignoring", zap.Error(err))
			env.Cfg.Output.Console = config.ConsoleModeNone
		}
	}
	env.Overwrite = cmd.Bool("overwrite")
	env.Charset = cmd.String("charset")
	forceCodePage(env, cmd.String("force-zip-cp"), log)

	log.Info("Layout starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("oracle", env.Cfg.Layout.Oracle))
	defer func(start time.Time) {
		log.Info("Layout completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	_, err = process(ctx, src, dst, env, os.Stdout, log)
	return err
}

// arguments returns absolute source and destination from command line,
// destination defaults to current directory.
func arguments(cmd *cli.Command, log *zap.Logger) (string, string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", "", errors.New("no input source has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return "", "", err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", "", err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return src, dst, nil
}

// Since zip "standard" does not define file name encoding we may need to
// force archaic code page for old archives
func forceCodePage(env *state.LocalEnv, cp string, log *zap.Logger) {
	if len(cp) == 0 {
		return
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		env.CodePage = nil
		return
	}
	env.CodePage = enc
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
}

func sourceOptions(env *state.LocalEnv) source.Options {
	return source.Options{
		Charset:            env.Charset,
		NameCodePage:       env.CodePage,
		Element:            env.Cfg.Source.Element,
		CollapseWhitespace: env.Cfg.Source.CollapseWhitespace,
	}
}

// Outcome is what single layout run produced.
type Outcome struct {
	Document *source.Document
	Result   *flow.Result[*page.Box]
	Manifest *output.Manifest
	Trace    *flow.Trace[*page.Box]
}

// process handles layout independently of CLI framework: loads source, lays
// it out, writes fragments into dst and prints them to console.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, console io.Writer, log *zap.Logger) (out *Outcome, err error) {
	cfg := env.Cfg

	doc, err := source.Load(ctx, src, sourceOptions(env), log)
	if err != nil {
		return nil, err
	}
	env.Rpt.StoreData("source/"+config.CleanFileName(filepath.Base(doc.Name)), []byte(doc.Text))

	sheet, err := NewSheet(&cfg.Layout)
	if err != nil {
		return nil, err
	}
	oracle, release, err := NewOracle(&cfg.Layout)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, release())
	}()

	out = &Outcome{Document: doc, Trace: &flow.Trace[*page.Box]{}}
	settings := NewSettings(&cfg.Layout, sheet, log)
	settings.Hooks = out.Trace.Hooks(flow.Hooks[*page.Box]{
		CloneCreated: func(clone *page.Box, pending string) {
			log.Debug("Container added", zap.Stringer("box", clone), zap.Int("pending", utf8.RuneCountInString(pending)))
		},
	})

	presets := sheet.Presets()
	if len(presets) == 0 && settings.Template == nil {
		return nil, errors.New("no containers to lay text out into")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out.Result, err = flow.New[*page.Box](oracle, sheet, settings, log).Flow(presets, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("layout failed: %w", err)
	}
	env.Rpt.StoreText("layout/trace.txt", out.Trace)
	env.Rpt.StoreText("layout/result.txt", out.Result)

	w, err := output.NewWriter(dst, output.Options{
		NameTemplate:  cfg.Output.NameTemplate,
		Transliterate: cfg.Output.Transliterate,
		Overwrite:     env.Overwrite,
		Manifest:      cfg.Output.Manifest,
	}, log)
	if err != nil {
		return nil, err
	}
	out.Manifest, err = w.Write(output.Run{
		Source:  doc.Path,
		Charset: doc.Charset,
		Oracle:  cfg.Layout.Oracle.String(),
		Marker:  cfg.Layout.Marker,
		Result:  out.Result,
	})
	if err != nil {
		return nil, err
	}
	for _, e := range out.Manifest.Containers {
		if err := env.Rpt.StoreCopy("output/"+e.File, filepath.Join(dst, e.File)); err != nil {
			log.Warn("Unable to copy fragment into report", zap.String("file", e.File), zap.Error(err))
		}
	}

	if err := output.Console(console, cfg.Output.Console, out.Result.Containers, oracle, consoleWidth(console)); err != nil {
		return nil, fmt.Errorf("unable to print containers: %w", err)
	}
	if r, ok := oracle.(renderer); ok && env.Rpt != nil {
		if err := output.Previews(out.Result.Containers, r, cfg.Output.Preview.Width, cfg.Output.Preview.Height, env.Rpt); err != nil {
			log.Warn("Unable to prepare previews", zap.Error(err))
		}
	}

	fields := []zap.Field{
		zap.Int("containers", len(out.Result.Containers)),
		zap.Int("clones", out.Result.Clones),
		zap.Int("measurements", out.Result.Measurements),
	}
	if out.Result.Complete() {
		log.Info("Text placed", fields...)
	} else {
		log.Warn("Text did not fit", append(fields, zap.Int("leftover", utf8.RuneCountInString(out.Result.Leftover)))...)
	}
	return out, nil
}

func consoleWidth(w io.Writer) int {
	const def = 80
	if f, ok := w.(*os.File); ok {
		return config.TerminalWidth(f, def)
	}
	return def
}
