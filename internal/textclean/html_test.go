package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: ""},
		{name: "plain text untouched", in: "## Report\nAll good", want: "## Report\n\nAll good"},
		{name: "emphasis", in: "<strong>Bold</strong> and <em>soft</em>", want: "**Bold** and *soft*"},
		{name: "line breaks", in: "one<br>two<br/>three", want: "one\n\ntwo\n\nthree"},
		{name: "paragraphs", in: "<p>first</p><p>second</p>", want: "first\n\nsecond"},
		{name: "div wrappers with attributes", in: `<div class="card" id="x">Inside <span style="color:red">span</span></div>`, want: "Inside span"},
		{name: "entities", in: "Fish &amp; Chips&nbsp;&quot;fresh&quot; &#39;daily&#39;", want: "Fish & Chips \"fresh\" 'daily'"},
		{name: "escaped markup is removed", in: "&lt;div&gt;text&lt;/div&gt;", want: "text"},
		{name: "spaces collapsed", in: "a    b\n\n\n\nc", want: "a b\n\nc"},
		{name: "scripts dropped", in: "<script>alert(1)</script>visible", want: "visible"},
		{name: "nested emphasis", in: "<b>outer <i>inner</i></b>", want: "**outer *inner***"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, HTML(tc.in))
		})
	}
}

func TestInline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Revenue grew **20%** this quarter", Inline("<p>Revenue grew <b>20%</b></p>\n<p>this quarter</p>"))
}
