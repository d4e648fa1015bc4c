package kbsite_test

import (
	"testing"

	"github.com/TheOne1006/kbsite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSections(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for empty markdown", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, kbsite.SplitSections("  \n"))
	})

	t.Run("keeps text without headings as one section", func(t *testing.T) {
		t.Parallel()

		sections := kbsite.SplitSections("Just a paragraph.\n\nAnd another.")

		require.Len(t, sections, 1)
		assert.Equal(t, 0, sections[0].Level)
		assert.Equal(t, "Just a paragraph.\n\nAnd another.", sections[0].Content)
	})

	t.Run("splits at headings", func(t *testing.T) {
		t.Parallel()

		markdown := "intro\n# Agents\nagent text\n## Getting Started With Go\nsteps"

		sections := kbsite.SplitSections(markdown)

		require.Len(t, sections, 3)
		assert.Equal(t, "intro", sections[0].Content)
		assert.Equal(t, 1, sections[1].Level)
		assert.Equal(t, "Agents", sections[1].Title)
		assert.Equal(t, "agent text", sections[1].Content)
		assert.Equal(t, 2, sections[2].Level)
		assert.Equal(t, "getting-started-with-go", sections[2].Anchor)
		assert.Equal(t, "steps", sections[2].Content)
	})

	t.Run("ignores headings inside code fences", func(t *testing.T) {
		t.Parallel()

		markdown := "# Usage\n```bash\n# not a heading\n```\n"

		sections := kbsite.SplitSections(markdown)

		require.Len(t, sections, 1)
		assert.Contains(t, sections[0].Content, "# not a heading")
	})

	t.Run("suffixes duplicate anchors", func(t *testing.T) {
		t.Parallel()

		sections := kbsite.SplitSections("# Setup\na\n# Setup\nb\n# Setup\nc")

		require.Len(t, sections, 3)
		assert.Equal(t, "setup", sections[0].Anchor)
		assert.Equal(t, "setup-1", sections[1].Anchor)
		assert.Equal(t, "setup-2", sections[2].Anchor)
	})
}
