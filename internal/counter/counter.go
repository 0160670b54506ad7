// Package counter formats word totals for the per-document and run trailers.
package counter

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders a word total as a human-readable count string.
// With perPage set it reports whole pages plus the remainder; otherwise
// the total is printed with digit grouping. perPage <= 0 means unset.
func Format(totalWords, perPage int) string {
	if perPage > 0 {
		return fmt.Sprintf("%d pages + %d words", totalWords/perPage, totalWords%perPage)
	}
	return printer.Sprintf("%d words", totalWords)
}
