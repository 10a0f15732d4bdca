package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Structure(t *testing.T) {
	doc := Document("my title", `<div id="json">body</div>`)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>my title</title>")
	assert.Contains(t, doc, `<div id="json">body</div>`)
	assert.Contains(t, doc, "<style>")
	assert.Contains(t, doc, "<script>")
	assert.Contains(t, doc, "collapser")
	assert.Contains(t, doc, "collapsible")
}

func TestDocument_TitleEscaped(t *testing.T) {
	doc := Document(`<img src=x> & "quotes"`, "body")
	assert.NotContains(t, doc, "<img")
	assert.Contains(t, doc, "<title>&lt;img src=x&gt; &amp; &quot;quotes&quot;</title>")
}

func TestDocument_DefaultTitle(t *testing.T) {
	doc := Document("", "body")
	assert.Contains(t, doc, "<title>JSON Document</title>")
}

func TestDocument_AssetsEmbedded(t *testing.T) {
	assert.NotEmpty(t, stylesheet)
	assert.NotEmpty(t, script)
	assert.Contains(t, stylesheet, ".errorline")
	assert.Contains(t, script, "collapsed")
}
