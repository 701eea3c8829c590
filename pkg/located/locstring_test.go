package located_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgabbard/bue-common-open/pkg/located"
)

// mustRegion builds a region for expectation tables.
func mustRegion(t *testing.T, startPos, endPos int, start, end located.Group) located.Region {
	t.Helper()
	r, err := located.NewRegion(startPos, endPos, start, end)
	require.NoError(t, err)
	return r
}

func TestFromText_PlainText(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("abc", located.NewGroup(0, 0))
	require.NoError(t, err)

	assert.Equal(t, "abc", s.Text())
	assert.Equal(t, 3, s.Length())
	assert.Equal(t, located.CharOffset(0), s.StartCharOffset())
	assert.Equal(t, located.CharOffset(2), s.EndCharOffset())
	assert.Equal(t, located.EDTOffset(0), s.StartEDTOffset())
	assert.Equal(t, located.EDTOffset(2), s.EndEDTOffset())

	regions := s.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t,
		mustRegion(t, 0, 3, located.NewGroup(0, 0), located.NewGroup(2, 2)),
		regions[0])
}

func TestFromText_EmptyText(t *testing.T) {
	t.Parallel()

	_, err := located.FromText("", located.NewGroup(0, 0))
	var constructionErr *located.ConstructionError
	require.ErrorAs(t, err, &constructionErr)
}

func TestFromText_MarkupSkipRegions(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	want := []located.Region{
		mustRegion(t, 0, 2, located.NewGroup(0, 0), located.NewGroup(1, 1)),
		mustRegion(t, 2, 5, located.NewGroup(2, 1), located.NewGroup(4, 1)),
		mustRegion(t, 5, 6, located.NewGroup(5, 2), located.NewGroup(5, 2)),
		mustRegion(t, 6, 10, located.NewGroup(6, 2), located.NewGroup(9, 2)),
		mustRegion(t, 10, 11, located.NewGroup(10, 3), located.NewGroup(10, 3)),
	}
	assert.Equal(t, want, s.Regions())

	// The tag spans froze the EDT count while char offsets ran on.
	regions := s.Regions()
	assert.True(t, regions[1].IsEDTSkipRegion())
	assert.True(t, regions[3].IsEDTSkipRegion())
	assert.False(t, regions[0].IsEDTSkipRegion())

	// Final character 'd' sits at char offset 10, EDT offset 3: only
	// a, b, c, d advanced the EDT count.
	assert.Equal(t, located.CharOffset(10), s.EndCharOffset())
	assert.Equal(t, located.EDTOffset(3), s.EndEDTOffset())
}

func TestFromText_SkipRegionsHaveZeroEDTWidth(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("x<a href=\"y\">link</a>z\rw", located.NewGroup(0, 0))
	require.NoError(t, err)

	for _, r := range s.Regions() {
		if r.IsEDTSkipRegion() {
			assert.Equal(t, r.StartOffset().EDTOffset(), r.EndOffset().EDTOffset(),
				"skip region %v must not advance EDT offsets", r)
		}
	}
}

func TestFromText_CarriageReturn(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("a\rb", located.NewGroup(0, 0))
	require.NoError(t, err)

	want := []located.Region{
		mustRegion(t, 0, 2, located.NewGroup(0, 0), located.NewGroup(1, 1)),
		mustRegion(t, 2, 3, located.NewGroup(2, 1), located.NewGroup(2, 1)),
	}
	assert.Equal(t, want, s.Regions())
}

func TestFromText_NestedAngleBrackets(t *testing.T) {
	t.Parallel()

	// The tag detector is a bare counter: the inner '<' deepens it, so the
	// first '>' does not close the tag and the whole span stays skipped.
	s, err := located.FromText("a<b<c>d>e", located.NewGroup(0, 0))
	require.NoError(t, err)

	assert.Equal(t, located.EDTOffset(1), s.EndEDTOffset(), "only a and e advance EDT")
	assert.Equal(t, located.CharOffset(8), s.EndCharOffset())
}

func TestFromText_InitialOffsets(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab", located.NewGroup(100, 50))
	require.NoError(t, err)

	assert.Equal(t, located.CharOffset(100), s.StartCharOffset())
	assert.Equal(t, located.CharOffset(101), s.EndCharOffset())
	assert.Equal(t, located.EDTOffset(50), s.StartEDTOffset())
	assert.Equal(t, located.EDTOffset(51), s.EndEDTOffset())
}

func TestFromText_ByteOffsets(t *testing.T) {
	t.Parallel()

	// 'a' is 1 byte, 'é' 2, '€' 3 and the Gothic hwair 4.
	s, err := located.FromTextEDTMatchingChar("aé€\U00010348", located.NewGroupWithByte(0, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Length())

	regions := s.Regions()
	require.Len(t, regions, 1)
	endByte, ok := regions[0].EndOffset().ByteOffset()
	require.True(t, ok, "byte offsets should be tracked when the initial group has one")
	assert.Equal(t, located.ByteOffset(9), endByte, "last char occupies bytes 6-9")
	assert.Equal(t, located.CharOffset(3), regions[0].EndOffset().CharOffset())
}

func TestFromTextStartingAtZero_EDTMatchesChar(t *testing.T) {
	t.Parallel()

	s, err := located.FromTextStartingAtZero("a<b>")
	require.NoError(t, err)

	regions := s.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, located.CharOffset(3), s.EndCharOffset())
	assert.Equal(t, located.EDTOffset(3), s.EndEDTOffset(),
		"markup must not be skipped in EDT-matches-char mode")
}

func TestOffsetGroupForCharOffset(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	g, err := s.OffsetGroupForCharOffset(0)
	require.NoError(t, err)
	assert.Equal(t, located.CharOffset(0), g.CharOffset())
	assert.Equal(t, located.EDTOffset(0), g.EDTOffset())

	// Inside the <i> tag the EDT offset stays frozen at the region start.
	g, err = s.OffsetGroupForCharOffset(3)
	require.NoError(t, err)
	assert.Equal(t, located.CharOffset(3), g.CharOffset())
	assert.Equal(t, located.EDTOffset(1), g.EDTOffset())
}

func TestOffsetGroupForCharOffset_NotFound(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("abc", located.NewGroup(0, 0))
	require.NoError(t, err)

	_, err = s.OffsetGroupForCharOffset(100)
	var notFound *located.OffsetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, located.CharOffset(100), notFound.Offset)

	shifted, err := located.FromText("abc", located.NewGroup(50, 50))
	require.NoError(t, err)

	_, err = shifted.OffsetGroupForCharOffset(5)
	require.ErrorAs(t, err, &notFound)
}

func TestSubstring_Prefix(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	sub, err := s.Substring(0, 2)
	require.NoError(t, err)

	assert.Equal(t, "ab", sub.Text())
	assert.Equal(t, located.EDTOffset(0), sub.StartEDTOffset())
	assert.Equal(t, located.EDTOffset(1), sub.EndEDTOffset())
	assert.False(t, s.Equal(sub))
	assert.True(t, s.Contains(sub))
}

func TestSubstring_AcrossSkipRegion(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	sub, err := s.Substring(1, 6)
	require.NoError(t, err)

	assert.Equal(t, "b<i>c", sub.Text())
	want := []located.Region{
		mustRegion(t, 0, 1, located.NewGroup(1, 1), located.NewGroup(1, 1)),
		mustRegion(t, 1, 4, located.NewGroup(2, 1), located.NewGroup(4, 1)),
		mustRegion(t, 4, 5, located.NewGroup(5, 2), located.NewGroup(5, 2)),
	}
	assert.Equal(t, want, sub.Regions())
	assert.True(t, sub.Regions()[1].IsEDTSkipRegion(),
		"clipping must not shift EDT offsets of a skip region")
}

func TestSubstring_FullRangeIsIdentity(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	full, err := s.Substring(0, s.Length())
	require.NoError(t, err)

	assert.True(t, s.Equal(full))
	assert.Equal(t, s.Hash(), full.Hash())
}

func TestSubstring_InvalidBounds(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("abcdef", located.NewGroup(0, 0))
	require.NoError(t, err)

	for _, bounds := range [][2]int{{-1, 3}, {2, 2}, {4, 2}, {0, 7}} {
		_, err := s.Substring(bounds[0], bounds[1])
		var boundsErr *located.SubstringBoundsError
		require.ErrorAs(t, err, &boundsErr, "bounds %v", bounds)
	}
}

func TestSubstring_TextMatchesRawSubstring(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	for _, w := range [][2]int{{0, 2}, {1, 6}, {2, 10}, {0, 11}, {10, 11}} {
		sub, err := s.Substring(w[0], w[1])
		require.NoError(t, err)
		raw, err := s.RawSubstring(w[0], w[1])
		require.NoError(t, err)
		assert.Equal(t, raw, sub.Text(), "window %v", w)
	}
}

func TestSubstringByCharOffsets_Inclusive(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	sub, err := s.SubstringByCharOffsets(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "ab", sub.Text())

	raw, err := s.RawSubstringByCharOffsets(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "ab", raw)
}

func TestContains_Reflexive(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"abc", "ab<i>c</i>d", "a\rb"} {
		s, err := located.FromText(text, located.NewGroup(0, 0))
		require.NoError(t, err)
		assert.True(t, s.Contains(s), "text %q", text)
	}
}

func TestContains_Substrings(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	for _, w := range [][2]int{{0, 2}, {1, 6}, {2, 10}, {0, 11}} {
		sub, err := s.Substring(w[0], w[1])
		require.NoError(t, err)
		assert.True(t, s.Contains(sub), "window %v", w)
	}
}

func TestContains_Mismatches(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("abc", located.NewGroup(0, 0))
	require.NoError(t, err)

	otherText, err := located.FromText("xyz", located.NewGroup(0, 0))
	require.NoError(t, err)
	assert.False(t, s.Contains(otherText))

	shifted, err := located.FromText("abc", located.NewGroup(10, 10))
	require.NoError(t, err)
	assert.False(t, s.Contains(shifted), "same text at different offsets is not contained")

	longer, err := located.FromText("abcdef", located.NewGroup(0, 0))
	require.NoError(t, err)
	assert.False(t, s.Contains(longer), "a longer string cannot fit")
	assert.True(t, longer.Contains(s))
}

func TestEqualAndHash(t *testing.T) {
	t.Parallel()

	a, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)
	b, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)
	c, err := located.FromText("ab<i>c</i>e", located.NewGroup(0, 0))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestHash_Concurrent(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab<i>c</i>d", located.NewGroup(0, 0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]uint64, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Hash()
		}()
	}
	wg.Wait()

	for _, h := range results {
		assert.Equal(t, results[0], h)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	r0 := mustRegion(t, 0, 2, located.NewGroup(0, 0), located.NewGroup(1, 1))
	r1 := mustRegion(t, 2, 3, located.NewGroup(2, 2), located.NewGroup(2, 2))
	bounds, err := located.NewGroupRange(located.NewGroup(0, 0), located.NewGroup(2, 2))
	require.NoError(t, err)

	s, err := located.New("abc", bounds, []located.Region{r0, r1})
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Text())

	var constructionErr *located.ConstructionError

	_, err = located.New("abc", bounds, nil)
	require.ErrorAs(t, err, &constructionErr, "empty region list")

	_, err = located.New("abc", bounds, []located.Region{r0})
	require.ErrorAs(t, err, &constructionErr, "regions do not cover the string")

	wideBounds, err := located.NewGroupRange(located.NewGroup(0, 0), located.NewGroup(10, 10))
	require.NoError(t, err)
	_, err = located.New("abc", wideBounds, []located.Region{r0, r1})
	require.ErrorAs(t, err, &constructionErr, "bounds wider than the region span")

	gap := mustRegion(t, 1, 3, located.NewGroup(2, 2), located.NewGroup(2, 2))
	_, err = located.New("abc", bounds, []located.Region{r0, gap})
	require.ErrorAs(t, err, &constructionErr, "non-contiguous regions")
}

func TestString(t *testing.T) {
	t.Parallel()

	s, err := located.FromText("ab", located.NewGroup(0, 0))
	require.NoError(t, err)
	assert.Contains(t, s.String(), `"ab"`)
}
