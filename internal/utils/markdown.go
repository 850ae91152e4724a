package utils

import (
	"regexp"
	"strings"
)

var (
	boldStarRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__(.*?)__`)
	italStarRe   = regexp.MustCompile(`\*(.*?)\*`)
	italUnderRe  = regexp.MustCompile(`_(.*?)_`)
	strikeRe     = regexp.MustCompile(`~~(.*?)~~`)
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`(.*?)`")
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blankRunRe   = regexp.MustCompile(`\n\s*\n`)
)

// StripMarkdown removes common markdown syntax from model output so the
// client can render plain text. Rule order matters: emphasis pairs go first
// so the single-marker rules do not re-match their leftovers, and fenced
// blocks are unwrapped before inline code. Unpaired markers are left as-is.
func StripMarkdown(text string) string {
	out := boldStarRe.ReplaceAllString(text, "$1")
	out = boldUnderRe.ReplaceAllString(out, "$1")
	out = italStarRe.ReplaceAllString(out, "$1")
	out = italUnderRe.ReplaceAllString(out, "$1")
	out = strikeRe.ReplaceAllString(out, "$1")
	out = codeFenceRe.ReplaceAllStringFunc(out, func(block string) string {
		return strings.TrimSpace(strings.ReplaceAll(block, "```", ""))
	})
	out = inlineCodeRe.ReplaceAllString(out, "$1")
	out = headingRe.ReplaceAllString(out, "")
	out = blankRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
