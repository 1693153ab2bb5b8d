package layout

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"tflow/config"
	"tflow/flow"
	"tflow/output"
	"tflow/page"
)

// attributed builds nested inline markup with attribute values containing
// spaces, so that cuts may land inside tags.
func attributed(rnd *rand.Rand, n int) string {
	vocab := []string{"lorem", "ipsum", "dolor", "sit", "amet", "ёлка", "über", "a"}
	opening := map[string]string{
		"b":    "<b>",
		"em":   `<em class="c d">`,
		"span": `<span title="one two three" class="x">`,
	}
	names := []string{"b", "em", "span"}

	var (
		parts []string
		open  []string
	)
	for range n {
		w := vocab[rnd.IntN(len(vocab))]
		if len(open) < 2 && rnd.IntN(4) == 0 {
			name := names[rnd.IntN(len(names))]
			open = append(open, name)
			w = opening[name] + w
		}
		if len(open) > 0 && rnd.IntN(3) == 0 {
			w += "</" + open[len(open)-1] + ">"
			open = open[:len(open)-1]
		}
		parts = append(parts, w)
	}
	for i := len(open) - 1; i >= 0; i-- {
		parts[len(parts)-1] += "</" + open[i] + ">"
	}
	return strings.Join(parts, " ")
}

func TestFlow_VerifiesOwnResult(t *testing.T) {
	for _, strict := range []bool{false, true} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			rnd := rand.New(rand.NewPCG(17, 19))
			log := zaptest.NewLogger(t)

			for i := range 100 {
				text := attributed(rnd, 10+rnd.IntN(40))
				cfg := &config.LayoutConfig{
					Oracle: config.OracleKindGrid,
					Containers: []config.ContainerConfig{
						{Name: "first", Width: float64(12 + rnd.IntN(10)), Height: 2},
						{Name: "second", Width: float64(12 + rnd.IntN(10)), Height: 2},
					},
					RemoveUnusedTemplate:   true,
					RemoveUnusedContainers: true,
					Marker:                 " ...",
					StrictTags:             strict,
				}

				sheet, err := NewSheet(cfg)
				if err != nil {
					t.Fatalf("NewSheet() error = %v", err)
				}
				oracle, release, err := NewOracle(cfg)
				if err != nil {
					t.Fatalf("NewOracle() error = %v", err)
				}
				res, err := flow.New[*page.Box](oracle, sheet, NewSettings(cfg, sheet, log), log).Flow(sheet.Presets(), text)
				if err != nil {
					t.Fatalf("[%d] Flow() error = %v", i, err)
				}
				if err := release(); err != nil {
					t.Fatalf("release error = %v", err)
				}

				v, err := output.Verify(text, res.Fragments, res.Leftover, cfg.Marker)
				if err != nil {
					t.Fatalf("[%d] Verify() error = %v\ntext %q\nfragments %q\nleftover %q", i, err, text, res.Fragments, res.Leftover)
				}
				if v.Complete() != res.Complete() {
					t.Errorf("[%d] verification complete = %v, layout complete = %v", i, v.Complete(), res.Complete())
				}
			}
		})
	}
}
