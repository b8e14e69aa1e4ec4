package cli

import (
	"fmt"
	"io"
)

const usageText = `Usage: linkstat -U "server url" -H "Header-name: Header-value" -n <integer>
This app makes HTTP GET requests to a remote server and reports the quality of the connection
Options:
	-U pass the URL of the target server. If no URL is passed, default will be www.google.com
	-H (optional): specify an extra HTTP header to add to the GET request. Can be used multiple times
	-n number of HTTP requests to make (the number of samples to average). If not set, default will be 1 sample
	-h print help
	--timeout <duration> per-request timeout, e.g. 5s
	--report <dir> write a summary and timing chart under dir
	--log-level <level> debug, info, warn or error
	--config <file> read settings from a YAML file
example: linkstat -U "www.google.com" -H "Accept:" -n 10
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
