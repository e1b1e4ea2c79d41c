package domain

// Client types as reported by the client service.
type ClientType string

const (
	ClientTypePersonal ClientType = "personal"
	ClientTypeBusiness ClientType = "empresarial"
)

// ClientSubtype is the client's tier within its type.
type ClientSubtype string

const (
	ClientSubtypeStandard ClientSubtype = "standard"
	ClientSubtypeVIP      ClientSubtype = "vip"
	ClientSubtypePYME     ClientSubtype = "pyme"
)

// ClientProfile is the client identity fetched from the external client
// service. It is never persisted here; every validation run fetches a fresh
// copy.
type ClientProfile struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	DNI     string        `json:"dni"`
	Type    ClientType    `json:"type"`
	Subtype ClientSubtype `json:"subtype"`
}

// IsBusiness reports whether the client is a business client.
func (c ClientProfile) IsBusiness() bool {
	return normalizeClientType(string(c.Type)) == ClientTypeBusiness
}

// IsPersonal reports whether the client is a personal client.
func (c ClientProfile) IsPersonal() bool {
	return normalizeClientType(string(c.Type)) == ClientTypePersonal
}

// HasSubtype compares the client tier case-insensitively; the upstream
// service is inconsistent about casing.
func (c ClientProfile) HasSubtype(subtype ClientSubtype) bool {
	return normalizeClientSubtype(string(c.Subtype)) == subtype
}
