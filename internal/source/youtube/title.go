package youtube

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	noiseRegex = regexp.MustCompile(`(?i)\((official video|official music video|official audio|full video song|full video|lyric video|audio|video|lyrics|with lyrics|HD|4K|Remastered|Remaster(ed)?)\)|\[(official video|official audio|audio|video|lyrics|HD|Remastered|Remaster(ed)?)\]`)
	featRegex  = regexp.MustCompile(`(?i)\bfeat\.?\s+`)
	topicRegex = regexp.MustCompile(`(?i)\s*-\s*topic$`)
	trackNum   = regexp.MustCompile(`^\s*\d+\.\s*`)
	spaceRegex = regexp.MustCompile(`\s{2,}`)
	splitRegex = regexp.MustCompile(`\s*[-–—|:]\s+`)
)

// CleanTitle strips the video-metadata noise uploads accumulate, like
// "[Official Video]" suffixes and leading track numbers. If cleaning eats
// most of the string the original wins, since an aggressive regex on a short
// title destroys more than it fixes.
func CleanTitle(raw string) string {
	cleaned := noiseRegex.ReplaceAllString(raw, "")
	cleaned = featRegex.ReplaceAllString(cleaned, "ft. ")
	cleaned = topicRegex.ReplaceAllString(cleaned, "")
	cleaned = trackNum.ReplaceAllString(cleaned, "")
	cleaned = spaceRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) < len(raw)*3/10 {
		return strings.TrimSpace(raw)
	}
	return cleaned
}

// SplitArtistTitle guesses (artist, title) from an uploaded video title.
// "Artist - Title" style separators are tried first; with no usable split
// the uploader name stands in as the artist.
func SplitArtistTitle(rawTitle, uploader string) (artist, title string) {
	t := CleanTitle(rawTitle)

	parts := splitRegex.Split(t, 2)
	if len(parts) == 2 {
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if left != "" && right != "" {
			if looksLikeArtist(left, right) {
				return capWords(left), capWords(right)
			}
			return capWords(right), capWords(left)
		}
	}

	if uploader != "" && !isVideoMetadata(uploader) {
		return capWords(uploader), capWords(t)
	}
	return "", capWords(t)
}

// looksLikeArtist: a comma or featuring credit marks an artist list, and a
// short left side against a longer right side usually reads "Artist - Title".
func looksLikeArtist(left, right string) bool {
	leftLower := strings.ToLower(left)
	if strings.Contains(left, ",") || strings.Contains(leftLower, "ft.") || strings.Contains(leftLower, "feat.") {
		return true
	}
	return len(strings.Fields(left)) <= 4 && len(strings.Fields(right)) >= 2
}

var videoMetadataWords = []string{
	"official", "video", "music", "lyrics", "audio", "hd", "4k",
	"topic", "vevo", "records", "entertainment", "channel",
}

func isVideoMetadata(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range videoMetadataWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// capWords title-cases each word but leaves short all-caps tokens (DJ, SPB)
// alone.
func capWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToUpper(w) && len(w) <= 4 {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
