package switchback

import "net/url"

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

// Mask replaces every value set for key in vals with a single [LogMaskVal].
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals.Set(key, LogMaskVal)
}
