package orbital

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// Responses arrive as one of two roots: Response for application-level
// results (approved or declined) and ErrorResponse for malformed or
// rejected requests. Both are flattened identically.
const (
	successRoot = "Response"
	errorRoot   = "ErrorResponse"
)

// xmlNode is a generic decoded element, kept independent of any
// schema so the flatten walk ports across response shapes.
type xmlNode struct {
	XMLName  xml.Name
	Children []xmlNode `xml:",any"`
	Text     string    `xml:",chardata"`
}

// parseResponse flattens a response document into a key → value map.
// Leaf tag names become lower_snake_case keys; non-leaf elements are
// descended into but not recorded. A body missing both known roots
// yields an empty map, which callers classify as a failed response.
//
// Duplicate leaf tags overwrite earlier values. Live gateway traffic has
// never been observed repeating a key, so last-wins is unverified
// against the real wire.
func parseResponse(body []byte) map[string]string {
	fields := make(map[string]string)

	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return fields
	}
	if root.XMLName.Local != successRoot && root.XMLName.Local != errorRoot {
		return fields
	}

	for _, child := range root.Children {
		flatten(child, fields)
	}
	return fields
}

func flatten(n xmlNode, fields map[string]string) {
	if len(n.Children) == 0 {
		fields[snakeCase(n.XMLName.Local)] = n.Text
		return
	}
	for _, child := range n.Children {
		flatten(child, fields)
	}
}

var (
	snakeAcronym  = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	snakeBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// snakeCase converts a wire tag name to the normalized response key,
// keeping digit runs attached to their word (CVV2RespCode →
// cvv2_resp_code, AVSRespCode → avs_resp_code).
func snakeCase(tag string) string {
	s := snakeAcronym.ReplaceAllString(tag, "${1}_${2}")
	s = snakeBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
