package onboardsdk

// The auto-saver validates snapshots locally before spending a request on
// them: a value of the wrong type would only come back as a 400 from the
// draft endpoint. The check is permissive — missing fields and unknown paths
// are fine, the server is the authority on content.

var draftShape = map[string]func(any) bool{
	"profile.displayName": isString,
	"profile.phone":       isString,
	"profile.company":     isString,

	"property.title":       isString,
	"property.description": isString,
	"property.city":        isString,
	"property.address":     isString,
	"property.kind":        isString,
	"property.surface":     isNumber,
	"property.bedrooms":    isNumber,

	"photos.images": isArray,

	"season.enabled":     isBool,
	"season.from":        isString,
	"season.to":          isString,
	"season.nightlyRate": isNumber,

	"pricing.monthlyRent": isNumber,
	"pricing.deposit":     isNumber,
	"pricing.charges":     isNumber,
	"pricing.currency":    isString,

	"compliance.energyClass":     isString,
	"compliance.gasCertificate":  isBool,
	"compliance.smokeDetectors":  isBool,
	"compliance.insuranceNumber": isString,

	"preferences.cities":     isArray,
	"preferences.maxRent":    isNumber,
	"preferences.minSurface": isNumber,
	"preferences.bedrooms":   isNumber,
	"preferences.furnished":  isBool,
	"preferences.moveInFrom": isString,
}

// validSnapshot checks the known draft paths for type mismatches. Image
// entries get a field-level look too since a malformed photo list is the
// snapshot most likely to go wrong mid-edit.
func validSnapshot(data map[string]any) bool {
	for path, ok := range draftShape {
		v := lookup(data, path)
		if v == nil {
			continue
		}
		if !ok(v) {
			return false
		}
	}
	if images, ok := lookup(data, "photos.images").([]any); ok {
		for _, item := range images {
			img, ok := item.(map[string]any)
			if !ok {
				return false
			}
			if u, present := img["url"]; present && !isString(u) {
				return false
			}
			if h, present := img["isHero"]; present && !isBool(h) {
				return false
			}
		}
	}
	if cities, ok := lookup(data, "preferences.cities").([]any); ok {
		for _, c := range cities {
			if !isString(c) {
				return false
			}
		}
	}
	return true
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}
