package models

import (
	"fmt"
	"strings"
)

// StateFilter - закрытый набор фильтров списка бронирований.
type StateFilter int

const (
	FilterAll StateFilter = iota
	FilterCurrent
	FilterPast
	FilterFuture
	FilterWaiting
	FilterRejected
)

var filterNames = map[StateFilter]string{
	FilterAll:      "ALL",
	FilterCurrent:  "CURRENT",
	FilterPast:     "PAST",
	FilterFuture:   "FUTURE",
	FilterWaiting:  "WAITING",
	FilterRejected: "REJECTED",
}

func (f StateFilter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("StateFilter(%d)", int(f))
}

// ParseStateFilter parses a filter name case-insensitively. The empty string
// maps to ALL so the HTTP layer can treat the query parameter as optional.
func ParseStateFilter(raw string) (StateFilter, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "ALL":
		return FilterAll, nil
	case "CURRENT":
		return FilterCurrent, nil
	case "PAST":
		return FilterPast, nil
	case "FUTURE":
		return FilterFuture, nil
	case "WAITING":
		return FilterWaiting, nil
	case "REJECTED":
		return FilterRejected, nil
	default:
		return FilterAll, fmt.Errorf("unknown state: %s", raw)
	}
}

// Viewpoint selects whose bookings a listing query is scoped by.
type Viewpoint int

const (
	ViewpointBooker Viewpoint = iota
	ViewpointOwner
)

func (v Viewpoint) String() string {
	if v == ViewpointOwner {
		return "OWNER"
	}
	return "BOOKER"
}
