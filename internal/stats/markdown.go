package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// WriteMarkdown writes the report as GitHub Flavored Markdown.
func WriteMarkdown(w io.Writer, report Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Sorted Names Report")
	md.PlainText("")
	metric := "share of records"
	if report.Options.Normalize {
		metric = "share of births"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Name file", "`" + report.NamePath + "`"},
			{"Years", strconv.Itoa(len(report.Series.Points))},
			{"Skipped years", strconv.Itoa(len(report.Series.Skipped))},
			{"Metric", metric},
			{"Label period", strconv.Itoa(report.Options.LabelPeriod)},
		},
	})
	md.PlainText("")

	md.H2("Longest Sorted Names")
	if len(report.Top) == 0 {
		md.PlainText("No sorted names found.")
	} else {
		items := make([]string, 0, len(report.Top))
		for _, rec := range report.Top {
			items = append(items, fmt.Sprintf("%s (%s, %d)", rec.Name, rec.Gender, rec.Count))
		}
		md.OrderedList(items...)
	}
	md.PlainText("")

	md.H2("Percent of Sorted Names per Year")
	if len(report.Series.Points) == 0 {
		md.PlainText("No years found.")
	} else {
		md.PlainText("`" + Sparkline(report.Series.Percents()) + "`")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: SeriesHeaders(),
			Rows:   SeriesRows(report.Series),
		})
	}

	return md.Build()
}
