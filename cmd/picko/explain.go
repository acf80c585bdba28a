package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/recommend"
)

// explainMonitor prints pipeline stages as they happen.
type explainMonitor struct {
	out io.Writer
}

var _ recommend.Monitor = (*explainMonitor)(nil)

func newExplainMonitor(out io.Writer) *explainMonitor {
	return &explainMonitor{out: out}
}

func (m *explainMonitor) Start(task string) {
	fmt.Fprintf(m.out, "task: %q\n", task)
}

func (m *explainMonitor) AfterKeywords(keywords []string, fromModel bool) {
	source := "model"
	if !fromModel {
		source = "split"
	}
	fmt.Fprintf(m.out, "  keywords (%s): %s\n", source, strings.Join(keywords, ", "))
}

func (m *explainMonitor) AfterRetrieval(candidates []*core.Tool) {
	fmt.Fprintf(m.out, "  retrieved %d candidates\n", len(candidates))
}

func (m *explainMonitor) AfterBroaden(candidates []*core.Tool) {
	fmt.Fprintf(m.out, "  broadened to %d candidates\n", len(candidates))
}

func (m *explainMonitor) AfterRerank(picks []*core.Tool) {
	fmt.Fprintf(m.out, "  model picked %d tools\n", len(picks))
}

func (m *explainMonitor) Fallback(stage recommend.Stage, err error) {
	fmt.Fprintf(m.out, "  %s fallback: %v\n", stage, err)
}

func (m *explainMonitor) Finish(results []*core.Tool) {
	for i, tool := range results {
		fmt.Fprintf(m.out, "  %d. %s [%s]\n", i+1, tool.Name, tool.Category)
	}
}
