package probe

// boundedCopy returns s cut to fit a buffer of size bytes that also holds a
// terminator, i.e. at most size-1 bytes.
func boundedCopy(s string, size int) string {
	if size <= 0 {
		return ""
	}
	if len(s) > size-1 {
		return s[:size-1]
	}
	return s
}
