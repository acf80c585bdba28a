package core

import (
	"errors"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "ChatGPT|https://chat.openai.com",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "non-ascii content",
			content:  "뤼튼|https://wrtn.ai",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %s vs %s", id1, id2)
			}
			if len(id1) != 16 {
				t.Errorf("IDFromContent() = %q, want 16 hex characters", id1)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestTool_Summary(t *testing.T) {
	tests := []struct {
		name string
		tool Tool
		want string
	}{
		{
			name: "localized strength wins",
			tool: Tool{Name: "Gamma", StrengthLocalized: "발표 자료 생성", DescriptionLocalized: "AI 프레젠테이션"},
			want: "발표 자료 생성",
		},
		{
			name: "falls back to localized description",
			tool: Tool{Name: "Gamma", DescriptionLocalized: "AI 프레젠테이션"},
			want: "AI 프레젠테이션",
		},
		{
			name: "falls back to name",
			tool: Tool{Name: "Gamma", Strength: "slides"},
			want: "Gamma",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tool.Summary(); got != tt.want {
				t.Errorf("Tool.Summary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTool_Value(t *testing.T) {
	tool := Tool{
		Name:                 "Notion AI",
		StrengthLocalized:    "문서 요약",
		DescriptionLocalized: "노트 앱",
		Category:             "생산성",
		SecondaryCategory:    "Productivity",
	}

	want := map[SearchField]string{
		FieldName:              "Notion AI",
		FieldStrength:          "문서 요약",
		FieldDescription:       "노트 앱",
		FieldCategory:          "생산성",
		FieldSecondaryCategory: "Productivity",
	}
	for _, f := range DefaultSearchFields {
		if got := tool.Value(f); got != want[f] {
			t.Errorf("Tool.Value(%s) = %q, want %q", f, got, want[f])
		}
	}
	if got := tool.Value(SearchField(99)); got != "" {
		t.Errorf("Tool.Value(unknown) = %q, want empty", got)
	}
}

func TestInteractionType_String(t *testing.T) {
	if InteractionFavorite.String() != "favorite" {
		t.Errorf("unexpected favorite name %q", InteractionFavorite.String())
	}
	if InteractionRating.String() != "rating" {
		t.Errorf("unexpected rating name %q", InteractionRating.String())
	}
	if InteractionType(0).String() != "unknown" {
		t.Errorf("unexpected zero name %q", InteractionType(0).String())
	}
}

func TestParseInteractionType(t *testing.T) {
	for _, want := range []InteractionType{InteractionFavorite, InteractionRating} {
		got, err := ParseInteractionType(want.String())
		if err != nil {
			t.Fatalf("ParseInteractionType(%q) error = %v", want.String(), err)
		}
		if got != want {
			t.Errorf("ParseInteractionType(%q) = %v, want %v", want.String(), got, want)
		}
	}

	if _, err := ParseInteractionType("like"); !errors.Is(err, ErrInvalidInteractionType) {
		t.Errorf("ParseInteractionType(like) error = %v, want ErrInvalidInteractionType", err)
	}
}
