// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package colorutil provides pure color math for theme-derived rendering:
// perceived-brightness text color selection and hex color darkening.
// Every function is total — malformed input degrades to a safe default
// instead of returning an error.
package colorutil

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// LightText is the translucent light text color used over dark backgrounds.
	LightText = "rgba(255, 255, 255, 0.95)"

	// DarkText is the translucent dark text color used over bright backgrounds.
	DarkText = "rgba(0, 0, 0, 0.85)"

	// brightnessThreshold separates "bright" from "dark" backgrounds on the
	// 0-255 perceived brightness scale.
	brightnessThreshold = 150
)

// TextColorFor returns the text color that stays readable over the given
// 6-digit hex background color. A leading "#" is tolerated. Malformed input
// returns LightText.
func TextColorFor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return LightText
	}

	// Perceived brightness per ITU-R BT.601 luma weights.
	brightness := (int(r)*299 + int(g)*587 + int(b)*114) / 1000
	if brightness > brightnessThreshold {
		return DarkText
	}
	return LightText
}

// Darken scales each RGB channel of a 6-digit hex color by (1 - amount) and
// re-encodes it as a 6-digit hex string without a leading "#". Malformed
// input returns "000000".
func Darken(hex string, amount float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "000000"
	}

	scale := func(c uint8) int {
		v := int(float64(c) * (1 - amount))
		if v < 0 {
			v = 0
		}
		return v
	}

	return fmt.Sprintf("%02x%02x%02x", scale(r), scale(g), scale(b))
}

// parseHex decodes a 6-digit hex color, tolerating a leading "#".
func parseHex(hex string) (r, g, b uint8, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}

	rv, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	gv, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	bv, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(rv), uint8(gv), uint8(bv), true
}
