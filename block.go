package bulletin

// BlockKind discriminates the closed set of semantic block variants.
// Adding a kind requires updating every exhaustive switch over BlockKind.
type BlockKind int

// Block kinds.
const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockCode
	BlockListItem
	BlockImage
)

// String returns the kind's name for logging and test output.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockCode:
		return "code"
	case BlockListItem:
		return "list_item"
	case BlockImage:
		return "image"
	}
	return "unknown"
}

// Block is one semantic, independently renderable unit of document content.
// Text-bearing kinds carry extracted plain text; image blocks carry the
// reference to their placed image.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1..3). Zero for non-heading blocks.
	Level int

	// Text is the extracted plain text. Empty for image blocks.
	Text string

	// Ref is the image reference. Nil for non-image blocks.
	Ref *ImageRef
}

// BlockBuilder converts image-placed content into an ordered, flat sequence
// of typed blocks.
type BlockBuilder interface {
	// Build walks the content in document order and emits one block per
	// semantic unit. A container element contributes its own text only
	// when none of its descendants are independently emitted.
	Build(p *Placement) ([]Block, error)
}
