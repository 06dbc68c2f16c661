package headless

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []string
}

func (r *recorder) Inserted(n int) { r.events = append(r.events, "ins:"+strconv.Itoa(n)) }
func (r *recorder) Removed(n int)  { r.events = append(r.events, "rem:"+strconv.Itoa(n)) }
func (r *recorder) Changed()       { r.events = append(r.events, "chg") }

func TestDocument_TypeNotifiesPerRune(t *testing.T) {
	doc := NewDocument()
	rec := &recorder{}
	doc.Observe(rec)

	doc.Type("éà!")

	assert.Equal(t, "éà!", doc.Text())
	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, []string{"ins:1", "ins:2", "ins:3"}, rec.events)
}

func TestDocument_PasteNotifiesOnce(t *testing.T) {
	doc := NewDocument()
	rec := &recorder{}
	doc.Observe(rec)

	doc.Paste("")
	doc.Paste("§è!")

	assert.Equal(t, []string{"ins:3"}, rec.events)
}

func TestDocument_Deletes(t *testing.T) {
	doc := NewDocument()
	doc.Type("abcd")
	rec := &recorder{}
	doc.Observe(rec)

	doc.DeleteLast(0)
	doc.DeleteLast(1)
	doc.DeleteLast(10)
	doc.Clear()

	assert.Empty(t, doc.Text())
	assert.Equal(t, []string{"rem:3", "rem:0"}, rec.events)
}

func TestDocument_SetTextIsRemoveThenInsert(t *testing.T) {
	doc := NewDocument()
	rec := &recorder{}
	doc.Observe(rec)

	doc.SetText("ab")
	doc.SetText("xyz")
	doc.SetText("")

	assert.Equal(t, []string{"ins:2", "rem:0", "ins:3", "rem:0"}, rec.events)
}

func TestDocument_ReplaceKeepsLength(t *testing.T) {
	doc := NewDocument()
	doc.Type("ab")
	rec := &recorder{}
	doc.Observe(rec)

	doc.Replace(1, 'c')
	doc.Replace(1, 'c')
	doc.Replace(5, 'z')

	assert.Equal(t, "ac", doc.Text())
	assert.Equal(t, []string{"chg"}, rec.events)
}

func TestDocument_Unobserve(t *testing.T) {
	doc := NewDocument()
	first, second := &recorder{}, &recorder{}
	doc.Observe(first)
	doc.Observe(second)
	doc.Unobserve(first)
	doc.Unobserve(&recorder{})

	doc.Type("a")

	assert.Empty(t, first.events)
	assert.Equal(t, []string{"ins:1"}, second.events)
}
