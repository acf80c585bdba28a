package llm

import (
	"testing"

	"github.com/picko-ai/picko/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildKeywordPrompt_EscapesTask(t *testing.T) {
	prompt := buildKeywordPrompt("say \"hi\"\nthen leave")

	assert.Contains(t, prompt, `사용자 입력: "say \"hi\"\nthen leave"`)
	assert.Contains(t, prompt, `{"keywords": [`)
}

func TestBuildListing(t *testing.T) {
	tools := []*core.Tool{
		{Name: "Jasper", Category: "마케팅", StrengthLocalized: "광고 문구", DescriptionLocalized: "ignored"},
		{Name: "Gamma", DescriptionLocalized: "발표 자료"},
		{Name: "Bare"},
	}

	want := "1. [마케팅] Jasper: 광고 문구\n" +
		"2. [기타] Gamma: 발표 자료\n" +
		"3. [기타] Bare: Bare"
	assert.Equal(t, want, buildListing(tools))
}

func TestBuildRankPrompt(t *testing.T) {
	tools := []*core.Tool{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	prompt := buildRankPrompt("보고서 작성", tools)

	assert.Contains(t, prompt, `사용자 작업: "보고서 작성"`)
	assert.Contains(t, prompt, "3. [기타] C: C")
	assert.Contains(t, prompt, "(1-3)")
	assert.Contains(t, prompt, "최대 10개")
}
