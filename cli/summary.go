package cli

import (
	"fmt"
	"os"
	"sort"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/lattice/table"
	"go.viam.com/lattice/utils"
)

// HeadingSummary describes the primitives leaving one start heading.
type HeadingSummary struct {
	Index      int
	Heading    float64
	Count      int
	LeftTurns  int
	MeanLength float64
	MinLength  float64
	MaxLength  float64
}

// Summarize groups the primitives of a lattice file by start heading. Headings in degrees.
func Summarize(doc *table.Document) ([]HeadingSummary, error) {
	byStart := lo.GroupBy(doc.Primitives, func(p table.Primitive) int { return p.StartAngleIndex })
	indices := lo.Keys(byStart)
	sort.Ints(indices)

	summaries := make([]HeadingSummary, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(doc.Metadata.HeadingAngles) {
			return nil, errors.Errorf("start angle index %d out of range for %d headings", idx, len(doc.Metadata.HeadingAngles))
		}
		prims := byStart[idx]
		lengths := lo.Map(prims, func(p table.Primitive, _ int) float64 { return p.TrajectoryLength })
		mean, err := stats.Mean(lengths)
		minLen, err2 := stats.Min(lengths)
		maxLen, err3 := stats.Max(lengths)
		if err := multierr.Combine(err, err2, err3); err != nil {
			return nil, errors.Wrapf(err, "failed to summarize heading %d", idx)
		}
		summaries = append(summaries, HeadingSummary{
			Index:      idx,
			Heading:    utils.RadToDeg(doc.Metadata.HeadingAngles[idx]),
			Count:      len(prims),
			LeftTurns:  lo.CountBy(prims, func(p table.Primitive) bool { return p.LeftTurn }),
			MeanLength: mean,
			MinLength:  minLen,
			MaxLength:  maxLen,
		})
	}
	return summaries, nil
}

// RenderSummary prints one row per start heading.
func RenderSummary(summaries []HeadingSummary) string {
	t := prettytable.NewWriter()
	t.AppendHeader(prettytable.Row{"#", "Heading", "Primitives", "Left turns", "Mean length", "Min length", "Max length"})
	total := 0
	for _, s := range summaries {
		total += s.Count
		t.AppendRow(prettytable.Row{
			s.Index,
			fmt.Sprintf("%.2f", s.Heading),
			s.Count,
			s.LeftTurns,
			fmt.Sprintf("%.4f", s.MeanLength),
			fmt.Sprintf("%.4f", s.MinLength),
			fmt.Sprintf("%.4f", s.MaxLength),
		})
	}
	t.AppendFooter(prettytable.Row{"", "Total", total})
	return t.Render()
}

// SummaryAction prints per heading statistics of a lattice file.
func SummaryAction(c *cli.Context) (err error) {
	f, err := os.Open(c.String(flagInput))
	if err != nil {
		return errors.Wrap(err, "failed to open lattice file")
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	doc, err := table.Read(f)
	if err != nil {
		return err
	}
	summaries, err := Summarize(doc)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", RenderSummary(summaries))
	return nil
}
