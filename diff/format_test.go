package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnified(t *testing.T) {
	u := ComputeUnifiedDiff("line1\nline2\nline3", "line1\nline2-changed\nline3\nline4", Options{})
	want := "  line1\n- line2\n+ line2-changed\n  line3\n+ line4"
	assert.Equal(t, want, FormatUnified(u.Lines))

	assert.Equal(t, "", FormatUnified(nil))
	assert.Equal(t, "+ ", FormatUnified(ComputeUnifiedDiff("", "\n", Options{}).Lines))
}

func TestFormatSplit(t *testing.T) {
	s, err := ComputeSplitDiff("p\na\nb", "p\nx", Options{})
	require.NoError(t, err)
	assert.Equal(t, "  p\n- a\n+ x\n- b", FormatSplit(s.Rows))

	s, err = ComputeSplitDiff("line1\nline2\nline3", "line1\nline2-changed\nline3\nline4", Options{})
	require.NoError(t, err)
	assert.Equal(t, "  line1\n- line2\n+ line2-changed\n  line3\n+ line4", FormatSplit(s.Rows))

	assert.Equal(t, "", FormatSplit(nil))
}
