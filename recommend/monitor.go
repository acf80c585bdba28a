package recommend

import (
	"github.com/picko-ai/picko/core"
)

// Stage names a pipeline stage in monitor callbacks and metrics.
type Stage string

const (
	StageKeywords Stage = "keywords"
	StageRetrieve Stage = "retrieve"
	StageBroaden  Stage = "broaden"
	StageRerank   Stage = "rerank"
	StageTerminal Stage = "terminal"
)

// Monitor receives callbacks as a request moves through the pipeline.
// Implementations must not retain the slices they are given.
type Monitor interface {
	Start(task string)
	AfterKeywords(keywords []string, fromModel bool)
	AfterRetrieval(candidates []*core.Tool)
	AfterBroaden(candidates []*core.Tool)
	AfterRerank(picks []*core.Tool)
	Fallback(stage Stage, err error)
	Finish(results []*core.Tool)
}

type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                   {}
func (n *noopMonitor) AfterKeywords(_ []string, _ bool) {}
func (n *noopMonitor) AfterRetrieval(_ []*core.Tool)    {}
func (n *noopMonitor) AfterBroaden(_ []*core.Tool)      {}
func (n *noopMonitor) AfterRerank(_ []*core.Tool)       {}
func (n *noopMonitor) Fallback(_ Stage, _ error)        {}
func (n *noopMonitor) Finish(_ []*core.Tool)            {}
