package validation

// Violation messages for roommate payloads.
const (
	msgRoommateTitleRequired  = "Title is required"
	msgRoommateDescRequired   = "Description is required"
	msgRoommatePlacesRequired = "Places to live preference is required"
	msgRoommateRegionRequired = "Region is required"
	msgRoommateYearRequired   = "Year is required"
	msgRoommateTitleLength    = "Title must be between 3 and 100 characters"
	msgRoommateDescLength     = "Description must be between 10 and 1000 characters"
	msgRoommateYearRange      = "Year must be a number between 1 and 4"
	msgRoommateImagesArray    = "Images must be provided as an array"
	msgRoommateGeneric        = "Error validating roommate post data"
)

// ValidateRoommate checks a raw roommate payload. All rules are evaluated
// independently and every violation is collected.
func ValidateRoommate(payload map[string]any) (violations []string) {
	defer func() {
		if r := recover(); r != nil {
			violations = []string{msgRoommateGeneric}
		}
	}()

	title := payload["title"]
	description := payload["description"]
	placesToLive := payload["placesToLive"]
	region := payload["region"]
	year := payload["year"]

	var errs []string

	if !present(title) {
		errs = append(errs, msgRoommateTitleRequired)
	}
	if !present(description) {
		errs = append(errs, msgRoommateDescRequired)
	}
	if !present(placesToLive) {
		errs = append(errs, msgRoommatePlacesRequired)
	}
	if !present(region) {
		errs = append(errs, msgRoommateRegionRequired)
	}
	if !present(year) {
		errs = append(errs, msgRoommateYearRequired)
	}

	if present(title) && !lengthIn(title, 3, 100) {
		errs = append(errs, msgRoommateTitleLength)
	}
	if present(description) && !lengthIn(description, 10, 1000) {
		errs = append(errs, msgRoommateDescLength)
	}

	if present(year) {
		n, ok := numericValue(year)
		if !ok || n != float64(int(n)) || n < 1 || n > 4 {
			errs = append(errs, msgRoommateYearRange)
		}
	}

	if images, ok := payload["images"]; ok && present(images) && !isSequence(images) {
		errs = append(errs, msgRoommateImagesArray)
	}

	return errs
}
