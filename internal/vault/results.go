package vault

// SubmitKind discriminates what a text submission turned into.
type SubmitKind string

const (
	// SubmittedCategoriesCreated reports new empty categories from a pure tag list.
	SubmittedCategoriesCreated SubmitKind = "categories_created"
	// SubmittedCategoriesExist reports a pure tag list with no novel tags.
	SubmittedCategoriesExist SubmitKind = "categories_exist"
	// SubmittedSaved reports an immediate save with no selection step.
	SubmittedSaved SubmitKind = "saved"
	// SubmittedSelection reports an opened category selection menu.
	SubmittedSelection SubmitKind = "selection"
	// SubmittedEdit reports that the text was consumed by an edit session.
	SubmittedEdit SubmitKind = "edit"
)

// SubmitResult is the tagged outcome of SubmitText. The field matching Kind
// is populated; the transport renders it.
type SubmitResult struct {
	Kind    SubmitKind
	Created []string
	Saved   *SaveSummary
	Menu    *SelectionMenu
	Edit    *EditOutcome
}

// SaveSummary confirms a committed note.
type SaveSummary struct {
	// Entry is the stored "<text> @ <timestamp>" string.
	Entry string
	// Categories lists every category the note was filed under, sorted,
	// always including "all".
	Categories []string
}

// MenuButton describes one toggle on the category selection keyboard.
type MenuButton struct {
	Category string
	Selected bool
	Count    int
}

// SelectionMenu is the render instruction for the selection keyboard.
// AutoSelected carries the tags pre-selected from the note text and is only
// set when the menu first opens.
type SelectionMenu struct {
	Buttons      []MenuButton
	AutoSelected []string
}

// EditOutcome reports a completed (or failed) edit action. On failure the
// accompanying error names the kind; Category and Entry carry whatever was
// parsed before the failure.
type EditOutcome struct {
	Action   EditAction
	Category string
	// Entry is the deleted note entry for EditDeleteNote successes.
	Entry string
	// Index is the 1-based note number as typed by the user.
	Index int
}

// ViewSection is one category block in a view projection, entries in
// insertion order. Indices shown to users are 1-based positions.
type ViewSection struct {
	Category string
	Entries  []string
}

// ViewResult is the read-only projection rendered by /view.
type ViewResult struct {
	// Category is set when the view was filtered to a single category.
	Category string
	// Total is the unique note count ("all" length) for the full view, or
	// the section length for a filtered one.
	Total    int
	Sections []ViewSection
}

// ExportDocument is the flat text rendering of the full view projection.
type ExportDocument struct {
	Filename string
	Body     string
}

// Stats summarizes stored usage for the admin surface.
type Stats struct {
	Users      int64
	Categories int
	Notes      int
}
