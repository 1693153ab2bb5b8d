package layout

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tflow/output"
	"tflow/source"
	"tflow/state"
)

// ErrIncomplete is returned in strict mode when part of the text was not
// placed into containers.
var ErrIncomplete = errors.New("text was not placed completely")

// Verify is action of verify subcommand: it checks that fragments written by
// layout hold the source text.
func Verify(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("verify")

	if cmd.Args().Len() < 2 {
		return errors.New("source and directory with fragments are required")
	}
	src, err := filepath.Abs(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	dir, err := filepath.Abs(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	env.Charset = cmd.String("charset")
	forceCodePage(env, cmd.String("force-zip-cp"), log)

	_, err = verify(ctx, src, dir, env, cmd.Bool("strict"), log)
	return err
}

func verify(ctx context.Context, src, dir string, env *state.LocalEnv, strict bool, log *zap.Logger) (*output.Verification, error) {
	doc, err := source.Load(ctx, src, sourceOptions(env), log)
	if err != nil {
		return nil, err
	}
	fragments, m, err := output.ReadFragments(dir)
	if err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("no fragments found in %s", dir)
	}

	// without manifest nothing is known about leftover
	leftover, marker := "", env.Cfg.Layout.Marker
	if m != nil {
		leftover, marker = m.Leftover, m.Marker
	}
	contents := make([]string, 0, len(fragments))
	for _, f := range fragments {
		contents = append(contents, f.Content)
	}

	v, err := output.Verify(doc.Text, contents, leftover, marker)
	if err != nil {
		return v, fmt.Errorf("fragments in %s do not match source: %w", dir, err)
	}
	log.Info("Fragments match source",
		zap.Int("fragments", len(fragments)), zap.Int("words", v.Words), zap.Int("placed", v.Placed),
		zap.Int("leftover", v.Leftover), zap.Bool("marked", v.Marked))

	if !v.Complete() {
		if strict {
			return v, fmt.Errorf("%w: %d of %d words left over", ErrIncomplete, v.Leftover, v.Words)
		}
		log.Warn("Text was not placed completely", zap.Int("leftover", v.Leftover))
	}
	return v, nil
}
