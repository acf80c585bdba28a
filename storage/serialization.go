// Copyright 2025 The Picko Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/picko-ai/picko/core"
)

// MarshalTool serializes a Tool to bytes.
func MarshalTool(tool *core.Tool) []byte {
	w := newMusWriter(
		ord.String.Size(string(tool.Id)) +
			ord.String.Size(tool.Name) +
			ord.String.Size(tool.Category) +
			ord.String.Size(tool.SecondaryCategory) +
			ord.String.Size(tool.Strength) +
			ord.String.Size(tool.StrengthLocalized) +
			ord.String.Size(tool.Description) +
			ord.String.Size(tool.DescriptionLocalized) +
			ord.Bool.Size(tool.Free) +
			ord.String.Size(tool.Link) +
			timeSize(tool.CreatedAt) +
			timeSize(tool.UpdatedAt))
	w.string(string(tool.Id))
	w.string(tool.Name)
	w.string(tool.Category)
	w.string(tool.SecondaryCategory)
	w.string(tool.Strength)
	w.string(tool.StrengthLocalized)
	w.string(tool.Description)
	w.string(tool.DescriptionLocalized)
	w.bool(tool.Free)
	w.string(tool.Link)
	w.time(tool.CreatedAt)
	w.time(tool.UpdatedAt)
	return w.bs
}

// UnmarshalTool deserializes a Tool from bytes.
func UnmarshalTool(data []byte) (*core.Tool, error) {
	r := &musReader{bs: data}
	tool := &core.Tool{
		Id:                   core.ID(r.string()),
		Name:                 r.string(),
		Category:             r.string(),
		SecondaryCategory:    r.string(),
		Strength:             r.string(),
		StrengthLocalized:    r.string(),
		Description:          r.string(),
		DescriptionLocalized: r.string(),
		Free:                 r.bool(),
		Link:                 r.string(),
		CreatedAt:            r.time(),
		UpdatedAt:            r.time(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: tool: %w", ErrSerializationFailed, r.err)
	}
	return tool, nil
}

// MarshalInteraction serializes an Interaction to bytes.
func MarshalInteraction(interaction *core.Interaction) []byte {
	w := newMusWriter(
		ord.String.Size(interaction.SessionID) +
			ord.String.Size(string(interaction.ToolID)) +
			ord.String.Size(interaction.ToolName) +
			varint.Int.Size(int(interaction.Type)) +
			ord.Bool.Size(interaction.IsFavorited) +
			varint.Int.Size(interaction.Rating) +
			timeSize(interaction.UpdatedAt))
	w.string(interaction.SessionID)
	w.string(string(interaction.ToolID))
	w.string(interaction.ToolName)
	w.int(int(interaction.Type))
	w.bool(interaction.IsFavorited)
	w.int(interaction.Rating)
	w.time(interaction.UpdatedAt)
	return w.bs
}

// UnmarshalInteraction deserializes an Interaction from bytes.
func UnmarshalInteraction(data []byte) (*core.Interaction, error) {
	r := &musReader{bs: data}
	interaction := &core.Interaction{
		SessionID:   r.string(),
		ToolID:      core.ID(r.string()),
		ToolName:    r.string(),
		Type:        core.InteractionType(r.int()),
		IsFavorited: r.bool(),
		Rating:      r.int(),
		UpdatedAt:   r.time(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: interaction: %w", ErrSerializationFailed, r.err)
	}
	return interaction, nil
}

// MarshalSequence serializes a position in the tool scan order.
func MarshalSequence(seq uint64) []byte {
	buf := make([]byte, varint.Uint64.Size(seq))
	varint.Uint64.Marshal(seq, buf)
	return buf
}

// UnmarshalSequence deserializes a position in the tool scan order.
func UnmarshalSequence(data []byte) (uint64, error) {
	seq, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: sequence: %w", ErrSerializationFailed, err)
	}
	return seq, nil
}

// Timestamps are stored as UTC Unix microseconds.
func timeSize(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

type musWriter struct {
	bs []byte
	n  int
}

func newMusWriter(size int) *musWriter {
	return &musWriter{bs: make([]byte, size)}
}

func (w *musWriter) string(v string) { w.n += ord.String.Marshal(v, w.bs[w.n:]) }
func (w *musWriter) bool(v bool)     { w.n += ord.Bool.Marshal(v, w.bs[w.n:]) }
func (w *musWriter) int(v int)       { w.n += varint.Int.Marshal(v, w.bs[w.n:]) }
func (w *musWriter) time(v time.Time) {
	w.n += varint.Int64.Marshal(v.UnixMicro(), w.bs[w.n:])
}

// musReader decodes fields in order and keeps the first error.
type musReader struct {
	bs  []byte
	n   int
	err error
}

func (r *musReader) string() string {
	if r.err != nil {
		return ""
	}
	v, m, err := ord.String.Unmarshal(r.bs[r.n:])
	r.n += m
	r.err = err
	return v
}

func (r *musReader) bool() bool {
	if r.err != nil {
		return false
	}
	v, m, err := ord.Bool.Unmarshal(r.bs[r.n:])
	r.n += m
	r.err = err
	return v
}

func (r *musReader) int() int {
	if r.err != nil {
		return 0
	}
	v, m, err := varint.Int.Unmarshal(r.bs[r.n:])
	r.n += m
	r.err = err
	return v
}

func (r *musReader) time() time.Time {
	if r.err != nil {
		return time.Time{}
	}
	v, m, err := varint.Int64.Unmarshal(r.bs[r.n:])
	r.n += m
	r.err = err
	if err != nil {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}
