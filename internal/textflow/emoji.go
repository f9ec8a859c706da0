// SPDX-License-Identifier: MPL-2.0

package textflow

import (
	"regexp"
	"sync"

	"github.com/yuin/goldmark-emoji/definition"
)

var (
	emojiCode = regexp.MustCompile(`:([a-z0-9_+\-]+):`)

	githubEmojis = sync.OnceValue(func() definition.Emojis { return definition.Github() })
)

// Emojize replaces ":name:" codes with their glyphs from the GitHub emoji
// table. Unknown codes are left untouched.
func Emojize(s string) string {
	return emojiCode.ReplaceAllStringFunc(s, func(code string) string {
		e, ok := githubEmojis().Get(code[1 : len(code)-1])
		if !ok || !e.IsUnicode() {
			return code
		}
		return string(e.Unicode)
	})
}
