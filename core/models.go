package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is the opaque identity of a tool record.
type ID string

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// Tool describes one AI tool in the catalog.
// Localized fields hold the Korean texts shown to users; the pipeline only reads tools.
type Tool struct {
	Id                   ID
	Name                 string
	Category             string // Localized category (category_kr)
	SecondaryCategory    string // Catalog category from the source listing (futurepedia_category)
	Strength             string
	StrengthLocalized    string // strength_kr
	Description          string
	DescriptionLocalized string // description_kr
	Free                 bool
	Link                 string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ContentKey returns the text used to derive an ID for tools imported without one.
func (t *Tool) ContentKey() string {
	return t.Name + "|" + t.Link
}

// Summary returns the best available one-line description of the tool:
// the localized strength, else the localized description, else the name.
func (t *Tool) Summary() string {
	if t.StrengthLocalized != "" {
		return t.StrengthLocalized
	}
	if t.DescriptionLocalized != "" {
		return t.DescriptionLocalized
	}
	return t.Name
}

// SearchField names a text field of Tool that substring queries can match against.
type SearchField int

const (
	FieldName SearchField = iota + 1
	FieldStrength
	FieldDescription
	FieldCategory
	FieldSecondaryCategory
)

// DefaultSearchFields are the fields keyword retrieval matches against.
var DefaultSearchFields = []SearchField{
	FieldName,
	FieldStrength,
	FieldDescription,
	FieldCategory,
	FieldSecondaryCategory,
}

// String returns the column name of the field.
func (f SearchField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldStrength:
		return "strength_kr"
	case FieldDescription:
		return "description_kr"
	case FieldCategory:
		return "category_kr"
	case FieldSecondaryCategory:
		return "futurepedia_category"
	default:
		return "unknown"
	}
}

// Value returns the tool's text for the field.
func (t *Tool) Value(f SearchField) string {
	switch f {
	case FieldName:
		return t.Name
	case FieldStrength:
		return t.StrengthLocalized
	case FieldDescription:
		return t.DescriptionLocalized
	case FieldCategory:
		return t.Category
	case FieldSecondaryCategory:
		return t.SecondaryCategory
	default:
		return ""
	}
}

// InteractionType identifies the kind of user feedback on a tool.
type InteractionType int

const (
	// InteractionFavorite marks a tool as favorited or unfavorited.
	InteractionFavorite InteractionType = iota + 1
	// InteractionRating records a 1-5 star rating.
	InteractionRating
)

// String returns the stored name of the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionFavorite:
		return "favorite"
	case InteractionRating:
		return "rating"
	default:
		return "unknown"
	}
}

// ParseInteractionType maps a stored type name back to its InteractionType.
// Returns ErrInvalidInteractionType for unknown names.
func ParseInteractionType(name string) (InteractionType, error) {
	switch name {
	case "favorite":
		return InteractionFavorite, nil
	case "rating":
		return InteractionRating, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteractionType, name)
	}
}

// Interaction is a user's feedback on a tool within a session.
// There is at most one interaction per (session, tool, type).
type Interaction struct {
	SessionID   string
	ToolID      ID
	ToolName    string
	Type        InteractionType
	IsFavorited bool // Set for InteractionFavorite
	Rating      int  // Set for InteractionRating
	UpdatedAt   time.Time
}
