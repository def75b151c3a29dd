package report

import (
	"fmt"
	"slices"
	"strings"
)

func (d *document) markdown() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.title)
	for s := range slices.Values(d.sections) {
		fmt.Fprintf(&b, "## %s\n\n", s.title)
		for f := range slices.Values(s.fields) {
			fmt.Fprintf(&b, "- **%s**: %s\n", f.label, escape(f.text))
		}
		if len(s.fields) > 0 {
			b.WriteString("\n")
		}
		for bullet := range slices.Values(s.bullets) {
			fmt.Fprintf(&b, "- %s\n", escape(bullet))
		}
		if len(s.bullets) > 0 {
			b.WriteString("\n")
		}
		if s.text != "" {
			b.WriteString(s.text)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("---\n\n")
	for f := range slices.Values(d.footer) {
		fmt.Fprintf(&b, "_%s_\n\n", f)
	}
	return []byte(b.String())
}

// escape keeps user supplied text from opening markdown structure.
func escape(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;").Replace(s)
}
