package utils

const (
	// UsernameKey is the key for username used in routing parameters.
	UsernameKey = "username"

	// PhotoIdKey is the key for photo ID used in routing parameters.
	PhotoIdKey = "photoId"

	// OffsetParamKey is the key for offset used in pagination query parameters.
	OffsetParamKey = "offset"

	// LimitParamKey is the key for limit used in pagination query parameters.
	LimitParamKey = "limit"

	// SortParamKey is the key for the optional listing sort key.
	SortParamKey = "sort"
)
