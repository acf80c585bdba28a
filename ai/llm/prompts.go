package llm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/picko-ai/picko/core"
)

const uncategorized = "기타"

const keywordPromptTemplate = `사용자 입력: %s

이 작업과 관련된 핵심 키워드를 5-10개 추출해주세요.
한글과 영어 모두 포함하고, 유사어와 관련 카테고리도 포함하세요.

예시:
입력: "마케팅 보고서 작성"
출력: {"keywords": ["마케팅", "marketing", "보고서", "report", "문서", "작성", "글쓰기", "writing", "자동화", "콘텐츠"]}

응답은 JSON 형식만 사용하세요:
{"keywords": ["키워드1", "키워드2", ...]}`

const rankPromptTemplate = `당신은 AI 도구 추천 전문가입니다.

사용자 작업: %s

다음 AI 도구 중 가장 적합한 상위 10개를 추천해주세요:

%s

응답은 **반드시** 다음 JSON 형식만 사용하세요:
{
  "recommendations": [
    {"rank": 1, "tool_number": 3, "reason": "추천 이유"}
  ]
}

주의:
- tool_number는 위 목록의 번호(1-%d)를 사용하세요
- 최대 10개까지만 추천하세요`

// quoteTask renders the task as a JSON string literal so quotes and newlines
// in user input cannot break out of the prompt line.
func quoteTask(task string) string {
	quoted, err := json.Marshal(task)
	if err != nil {
		return strconv.Quote(task)
	}
	return string(quoted)
}

func buildKeywordPrompt(task string) string {
	return fmt.Sprintf(keywordPromptTemplate, quoteTask(task))
}

// buildListing numbers tools from 1, one per line:
// "{i}. [{category}] {name}: {summary}".
func buildListing(tools []*core.Tool) string {
	var sb strings.Builder
	for i, tool := range tools {
		if i > 0 {
			sb.WriteByte('\n')
		}
		category := tool.Category
		if category == "" {
			category = uncategorized
		}
		fmt.Fprintf(&sb, "%d. [%s] %s: %s", i+1, category, tool.Name, tool.Summary())
	}
	return sb.String()
}

func buildRankPrompt(task string, tools []*core.Tool) string {
	return fmt.Sprintf(rankPromptTemplate, quoteTask(task), buildListing(tools), len(tools))
}
