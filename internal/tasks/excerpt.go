package tasks

// Excerpt limits used in notification bodies
const (
	PostExcerptLen    = 50
	CommentExcerptLen = 100
)

// Excerpt returns at most limit characters of s, appending "..." when
// anything was cut off. Limits count characters, not bytes.
func Excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
