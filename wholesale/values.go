package wholesale

// RegistrationValues is one wholesale application as collected from the
// signup form. CustomerID ties the application to the platform customer
// that filled it in; a missing CustomerID is a caller bug, not user input.
type RegistrationValues struct {
	Name            string
	CompanyName     string
	CountryCode     string
	PostalCode      string
	Phone           string
	CellPhone       string
	TaxID           string
	HearAbout       string
	AcceptMarketing bool
	CustomerID      string
}

const (
	FIELD_NAME             = "name"
	FIELD_COMPANY_NAME     = "companyName"
	FIELD_COUNTRY_CODE     = "countryCode"
	FIELD_POSTAL_CODE      = "postalCode"
	FIELD_PHONE            = "phone"
	FIELD_CELL_PHONE       = "cellPhone"
	FIELD_TAX_ID           = "taxId"
	FIELD_HEAR_ABOUT       = "hear"
	FIELD_ACCEPT_MARKETING = "acceptMarketing"
)

// FieldDefinition describes one form field of the active signup form.
// The set drives both validation and what the storefront renders.
type FieldDefinition struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

type FieldSet []FieldDefinition

func (fs FieldSet) IsRequired(name string) bool {
	for _, f := range fs {
		if f.Name == name {
			return f.Required
		}
	}
	return false
}

// DefaultFieldSet mirrors the live signup form.
func DefaultFieldSet() FieldSet {
	return FieldSet{
		{Name: FIELD_NAME, Label: "Full name", Required: true},
		{Name: FIELD_COMPANY_NAME, Label: "Company name", Required: true},
		{Name: FIELD_COUNTRY_CODE, Label: "Country", Required: true},
		{Name: FIELD_POSTAL_CODE, Label: "Postal code", Required: true},
		{Name: FIELD_PHONE, Label: "Phone", Required: true},
		{Name: FIELD_CELL_PHONE, Label: "Cell phone", Required: false},
		{Name: FIELD_TAX_ID, Label: "Tax ID", Required: true},
		{Name: FIELD_HEAR_ABOUT, Label: "How did you hear about us?", Required: false},
		{Name: FIELD_ACCEPT_MARKETING, Label: "Send me product news", Required: false},
	}
}

func (v RegistrationValues) fieldValue(name string) string {
	switch name {
	case FIELD_NAME:
		return v.Name
	case FIELD_COMPANY_NAME:
		return v.CompanyName
	case FIELD_COUNTRY_CODE:
		return v.CountryCode
	case FIELD_POSTAL_CODE:
		return v.PostalCode
	case FIELD_PHONE:
		return v.Phone
	case FIELD_CELL_PHONE:
		return v.CellPhone
	case FIELD_TAX_ID:
		return v.TaxID
	case FIELD_HEAR_ABOUT:
		return v.HearAbout
	default:
		return ""
	}
}
