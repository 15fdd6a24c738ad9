package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDeduplicates(t *testing.T) {
	s := NewSet()
	s.Add("_:a", Candidate{ID: 1, Type: "Agent"})
	s.Add("_:a", Candidate{ID: 1, Type: "agent"})
	s.Add("_:a", Candidate{ID: 2, Type: "Agent"})

	assert.Len(t, s.Matches("_:a"), 2)
	assert.True(t, s.Has("_:a"))
	assert.False(t, s.Has("_:b"))
	assert.Equal(t, 1, s.Len())
}

func TestSetMatchesOrdered(t *testing.T) {
	s := NewSet()
	s.Add("_:a", Candidate{ID: 9, Type: "Tag"})
	s.Add("_:a", Candidate{ID: 3, Type: "Agent"})
	s.Add("_:a", Candidate{ID: 1, Type: "Tag"})

	got := s.Matches("_:a")
	assert.Equal(t, []int64{3, 1, 9}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Nil(t, s.Matches("_:missing"))
}

func TestSetOne(t *testing.T) {
	s := NewSet()
	_, ok := s.One("_:a")
	assert.False(t, ok)

	s.Add("_:a", Candidate{ID: 5, Type: "Agent"})
	c, ok := s.One("_:a")
	assert.True(t, ok)
	assert.Equal(t, int64(5), c.ID)

	s.Add("_:a", Candidate{ID: 6, Type: "Agent"})
	_, ok = s.One("_:a")
	assert.False(t, ok)
}

func TestSetNodeIDs(t *testing.T) {
	s := NewSet()
	s.Add("_:b", Candidate{ID: 1, Type: "Tag"})
	s.Add("_:a", Candidate{ID: 2, Type: "Tag"})
	assert.Equal(t, []string{"_:a", "_:b"}, s.NodeIDs())
}

func TestSubtypeFromTag(t *testing.T) {
	assert.Equal(t, "preprint", SubtypeFromTag("share.preprint"))
	assert.Equal(t, "creator", SubtypeFromTag("share.Creator"))
	assert.Equal(t, "person", SubtypeFromTag("person"))
}
