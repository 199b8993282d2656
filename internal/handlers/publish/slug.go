package publish

import (
	"fmt"
	"strings"

	"pagesmith-api/internal/shared"
)

// attributionSnippet is the fixed footer injected into newly created sites,
// never into overwrites.
const attributionSnippet = `<p style="position: fixed; left: 8px; bottom: 8px; z-index: 10; border-radius: 8px; text-align: center; font-size: 12px; color: #fff; background: rgba(0, 0, 0, 0.8); padding: 4px 8px;">Made with <a href="https://pagesmith.dev" style="color: #fff; text-decoration: underline;" target="_blank">Pagesmith</a></p>`

// Slugify turns a human title into a URL-safe space name: lowercase, any run
// of non-alphanumeric characters collapses to a single dash, leading and
// trailing dashes trimmed, truncated to the platform's name limit.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	slug := b.String()
	if len(slug) > shared.MaxSlugLength {
		slug = strings.Trim(slug[:shared.MaxSlugLength], "-")
	}
	return slug
}

// InjectAttribution places the footer immediately before the closing body
// tag. Documents without one are returned unchanged.
func InjectAttribution(html string) string {
	idx := strings.LastIndex(html, "</body>")
	if idx == -1 {
		return html
	}
	return html[:idx] + attributionSnippet + html[idx:]
}

// Descriptor renders the space's companion document: a metadata header plus
// the static-hosting declaration the platform expects.
func Descriptor(title string) string {
	return fmt.Sprintf(`---
title: %s
emoji: 📄
colorFrom: blue
colorTo: indigo
sdk: static
pinned: false
---

Generated and published with Pagesmith.
`, title)
}
