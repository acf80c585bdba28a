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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTool indicates a Tool failed validation.
	ErrInvalidTool = errors.New("invalid tool")

	// ErrInvalidInteraction indicates an Interaction failed validation.
	ErrInvalidInteraction = errors.New("invalid interaction")

	// ErrEmptyToolName indicates the tool Name field is empty.
	ErrEmptyToolName = errors.New("tool name cannot be empty")

	// ErrEmptySessionID indicates the interaction has no session.
	ErrEmptySessionID = errors.New("session id cannot be empty")

	// ErrEmptyToolID indicates the interaction does not reference a tool.
	ErrEmptyToolID = errors.New("tool id cannot be empty")

	// ErrInvalidInteractionType indicates an invalid InteractionType value.
	ErrInvalidInteractionType = errors.New("invalid interaction type")

	// ErrInvalidRating indicates a rating outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
