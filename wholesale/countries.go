package wholesale

// Countries the registration backend accepts applications from.
// ISO 3166-1 alpha-2, uppercase.
var allowedCountryCodes = map[string]struct{}{}

func init() {
	codes := []string{
		"AD", "AE", "AR", "AT", "AU", "BA", "BE", "BG", "BR", "CA",
		"CH", "CL", "CN", "CO", "CR", "CY", "CZ", "DE", "DK", "EC",
		"EE", "EG", "ES", "FI", "FO", "FR", "GB", "GL", "GR", "GT",
		"HK", "HR", "HU", "ID", "IE", "IL", "IN", "IS", "IT", "JP",
		"KR", "LI", "LT", "LU", "LV", "MA", "MC", "MT", "MX", "MY",
		"NL", "NO", "NZ", "PA", "PE", "PH", "PL", "PT", "RO", "RS",
		"SA", "SE", "SG", "SI", "SK", "SM", "TH", "TR", "TW", "UA",
		"US", "UY", "VN", "ZA",
	}
	for _, c := range codes {
		allowedCountryCodes[c] = struct{}{}
	}
}

func IsAllowedCountryCode(code string) bool {
	_, ok := allowedCountryCodes[code]
	return ok
}
