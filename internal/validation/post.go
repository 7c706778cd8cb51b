package validation

// Violation messages for post payloads.
const (
	msgPostMissingRequired = "Missing required fields: title, description, and category are required"
	msgPostTitleLength     = "Title must be between 3 and 100 characters"
	msgPostDescLength      = "Description must be between 10 and 1000 characters"
	msgPostNoCategory      = "At least one category is required"
	msgPostImagesArray     = "Images must be provided as an array"
	msgPostGeneric         = "Error validating post data"
)

// ValidatePost checks a raw post payload. Unlike the other validators it
// fails fast: the first rule that trips is returned alone.
func ValidatePost(payload map[string]any) (violations []string) {
	defer func() {
		if r := recover(); r != nil {
			violations = []string{msgPostGeneric}
		}
	}()

	title := payload["title"]
	description := payload["description"]
	categories := payload["categories"]

	if !present(title) || !present(description) || !present(categories) {
		return []string{msgPostMissingRequired}
	}

	if !lengthIn(title, 3, 100) {
		return []string{msgPostTitleLength}
	}

	if !lengthIn(description, 10, 1000) {
		return []string{msgPostDescLength}
	}

	if !isSequence(categories) || sequenceLen(categories) == 0 {
		return []string{msgPostNoCategory}
	}

	if images, ok := payload["images"]; ok && present(images) && !isSequence(images) {
		return []string{msgPostImagesArray}
	}

	return nil
}

func sequenceLen(v any) int {
	switch val := v.(type) {
	case []any:
		return len(val)
	case []string:
		return len(val)
	default:
		return 0
	}
}
