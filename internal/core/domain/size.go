package domain

import (
	"math"
	"strconv"
)

var sizeUnits = [...]string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with a 1024 base and at most two decimals,
// dropping trailing zeros: 1536 -> "1.5 KB", 1048576 -> "1 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := 0
	div := int64(1)
	for i < len(sizeUnits)-1 && bytes/div >= k {
		div *= k
		i++
	}

	value := math.Round(float64(bytes)/float64(div)*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
