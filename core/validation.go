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


package core

import (
	"fmt"
	"strings"
)

const (
	// MinRating is the lowest accepted star rating.
	MinRating = 1
	// MaxRating is the highest accepted star rating.
	MaxRating = 5
)

// ValidateTool validates a Tool according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//
// NOT validated (assigned by repositories):
//   - ID (derived from name and link when empty)
//   - CreatedAt/UpdatedAt
func ValidateTool(tool *Tool) error {
	if tool == nil {
		return fmt.Errorf("%w: tool is nil", ErrInvalidTool)
	}

	if strings.TrimSpace(tool.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTool, ErrEmptyToolName)
	}

	return nil
}

// ValidateInteraction validates an Interaction according to domain rules.
//
// Validation rules:
//   - SessionID and ToolID must not be empty
//   - Type must be Favorite or Rating
//   - Ratings must be within MinRating..MaxRating
func ValidateInteraction(interaction *Interaction) error {
	if interaction == nil {
		return fmt.Errorf("%w: interaction is nil", ErrInvalidInteraction)
	}

	if interaction.SessionID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInteraction, ErrEmptySessionID)
	}

	if interaction.ToolID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInteraction, ErrEmptyToolID)
	}

	switch interaction.Type {
	case InteractionFavorite:
	case InteractionRating:
		if interaction.Rating < MinRating || interaction.Rating > MaxRating {
			return fmt.Errorf("%w: %w: got %d", ErrInvalidInteraction, ErrInvalidRating, interaction.Rating)
		}
	default:
		return fmt.Errorf("%w: %w: value %d", ErrInvalidInteraction, ErrInvalidInteractionType, interaction.Type)
	}

	return nil
}
