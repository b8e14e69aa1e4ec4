package report

import "strings"

var filenameReplacer = strings.NewReplacer(
	".", "_",
	":", "_",
	"/", "_",
	"\\", "_",
	" ", "_",
	"?", "_",
	"*", "_",
	"|", "_",
	"<", "_",
	">", "_",
	"\"", "_",
	"[", "",
	"]", "",
)

// sanitizeFilename turns a host[:port] into a name safe for report directories
func sanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}
