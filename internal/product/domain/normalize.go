package domain

import "strings"

func normalizeClientType(raw string) ClientType {
	return ClientType(strings.ToLower(strings.TrimSpace(raw)))
}

func normalizeClientSubtype(raw string) ClientSubtype {
	return ClientSubtype(strings.ToLower(strings.TrimSpace(raw)))
}
