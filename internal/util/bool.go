package util

// FalseIfNil returns the dereferenced bool or false if the pointer is nil.
func FalseIfNil(b *bool) bool {
	if b == nil {
		return false
	}

	return *b
}
