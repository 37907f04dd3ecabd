package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneTagList(t *testing.T) {
	z := &Zone{}
	assert.Nil(t, z.TagList())

	z.Tags = "stage,crowd"
	assert.Equal(t, []string{"stage", "crowd"}, z.TagList())

	z.Tags = " stage , crowd , "
	assert.Equal(t, []string{"stage", "crowd"}, z.TagList())

	z.Tags = " , ,"
	assert.Nil(t, z.TagList())
}

func TestZoneSetTagList(t *testing.T) {
	z := &Zone{}

	z.SetTagList([]string{"a", " b ", ""})
	assert.Equal(t, "a,b", z.Tags)

	z.SetTagList([]string{"a", "b", "a", " a "})
	assert.Equal(t, "a,b", z.Tags)

	z.SetTagList(nil)
	assert.Empty(t, z.Tags)
	assert.Nil(t, z.TagList())
}
