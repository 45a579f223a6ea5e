package domain

import "strings"

// GunLicence describes the financed firearm. Display only.
type GunLicence struct {
	ID           int64  `json:"id"`
	Make         string `json:"make"`
	Type         string `json:"type"`
	Caliber      string `json:"caliber"`
	SerialNumber string `json:"serial_number"`
}

// Description builds the weapon description line for statements, e.g.
// "CZ 75 Pistol 9mm". Returns "" when make or type is missing so callers
// can fall back to a generic label.
func (g *GunLicence) Description() string {
	if g == nil || g.Make == "" || g.Type == "" {
		return ""
	}
	parts := []string{g.Make, g.Type}
	if g.Caliber != "" {
		parts = append(parts, g.Caliber)
	}
	return strings.Join(parts, " ")
}
