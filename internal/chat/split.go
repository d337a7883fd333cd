package chat

import "golang.org/x/exp/utf8string"

// Split cuts text into chunks of at most max runes.
func Split(text string, max int) []string {
	if text == "" {
		return nil
	}

	str := utf8string.NewString(text)
	count := str.RuneCount()
	if max <= 0 || count <= max {
		return []string{text}
	}

	chunks := make([]string, 0, (count+max-1)/max)
	for start := 0; start < count; start += max {
		end := start + max
		if end > count {
			end = count
		}

		chunks = append(chunks, str.Slice(start, end))
	}

	return chunks
}
