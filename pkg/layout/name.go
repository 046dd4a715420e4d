package layout

import "fmt"

// StallLabel encodes a zero-based index in bijective base 26:
// 0 -> A, 25 -> Z, 26 -> AA, 701 -> ZZ, 702 -> AAA.
func StallLabel(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for n := index; n >= 0; n = n/26 - 1 {
		buf = append(buf, byte('A'+n%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// StallID is the identifier of the n-th generated stall on a map.
func StallID(mapID, n int) string {
	return fmt.Sprintf("%d-stall-%d", mapID, n)
}

// StallName is the display name of the n-th generated stall on a map.
func StallName(mapID, n int) string {
	return fmt.Sprintf("%d-%s", mapID, StallLabel(n))
}
