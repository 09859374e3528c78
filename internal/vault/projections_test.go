package vault

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotes(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.SubmitText(ctx, 1, "#work #urgent")
	require.NoError(t, err)

	submit := func(text string, cats ...string) {
		res, err := svc.SubmitText(ctx, 1, text)
		require.NoError(t, err)
		require.Equal(t, SubmittedSelection, res.Kind)
		for _, cat := range cats {
			_, err = svc.ToggleCategory(ctx, 1, cat)
			require.NoError(t, err)
		}
		_, err = svc.CommitSelection(ctx, 1)
		require.NoError(t, err)
	}
	submit("call the plumber", "work")
	submit("pay the invoice", "work", "urgent")
}

func TestViewFull(t *testing.T) {
	svc := newTestService(newMemRepo())
	seedNotes(t, svc)

	res, err := svc.View(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Sections, 3)
	// "all" leads, the rest in listing order.
	assert.Equal(t, "all", res.Sections[0].Category)
	assert.Equal(t, "urgent", res.Sections[1].Category)
	assert.Equal(t, "work", res.Sections[2].Category)
	assert.Len(t, res.Sections[0].Entries, 2)
	assert.Len(t, res.Sections[1].Entries, 1)
}

func TestViewFiltered(t *testing.T) {
	svc := newTestService(newMemRepo())
	seedNotes(t, svc)

	res, err := svc.View(context.Background(), 1, "#Work")
	require.NoError(t, err)
	assert.Equal(t, "work", res.Category)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "call the plumber @ "+testStamp, res.Sections[0].Entries[0])
}

func TestViewMissingCategoryIsEmptyNotError(t *testing.T) {
	svc := newTestService(newMemRepo())
	seedNotes(t, svc)

	res, err := svc.View(context.Background(), 1, "#nothere")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Sections)
}

func TestViewEmptyVault(t *testing.T) {
	svc := newTestService(newMemRepo())

	res, err := svc.View(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Sections)
}

func TestExport(t *testing.T) {
	svc := newTestService(newMemRepo())
	seedNotes(t, svc)

	doc, err := svc.Export(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "brain_vault_notes_2024-06-01_09-30-00_AM.txt", doc.Filename)
	assert.Contains(t, doc.Body, exportBanner)
	assert.Contains(t, doc.Body, "Generated: "+testStamp)
	assert.Contains(t, doc.Body, "# all")
	assert.Contains(t, doc.Body, "# work")
	assert.Contains(t, doc.Body, "pay the invoice @ "+testStamp)
	// Section order mirrors the full view.
	assert.Less(t,
		strings.Index(doc.Body, "# all"),
		strings.Index(doc.Body, "# urgent"),
	)
}

func TestExportEmptyVault(t *testing.T) {
	svc := newTestService(newMemRepo())

	doc, err := svc.Export(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, doc)
}
