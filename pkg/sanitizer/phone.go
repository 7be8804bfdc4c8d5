package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegions are tried in order for numbers written without a country code.
var DefaultRegions = []string{"LK", "IN"}

// FormatPhone returns phone in E.164 form, or phone unchanged when it cannot be
// parsed as a valid number in any of regions (DefaultRegions when none given).
func FormatPhone(phone string, regions ...string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return phone
	}
	if len(regions) == 0 {
		regions = DefaultRegions
	}

	for _, region := range regions {
		parsed, err := phonenumbers.Parse(trimmed, region)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return phone
}
