package alert

import "strings"

// Table maps an alert key to the exact mesh names forming one asset.
// Keys match case-insensitively: config loaders lowercase map keys, so a
// key must stay reachable by its original spelling.
type Table map[string][]string

// DefaultTable returns the alert keys of the factory model.
func DefaultTable() Table {
	return Table{
		"kuka-kr300":       {"KR300_Base", "KR300_Arm", "KR300_Wrist"},
		"kuka-kr120-left":  {"KR120_L_Base", "KR120_L_Arm"},
		"kuka-kr120-right": {"KR120_R_Base", "KR120_R_Arm"},
		"conveyor-main":    {"Conveyor_Belt", "Conveyor_Frame"},
		"storage-rack":     {"Rack_A", "Rack_B"},
	}
}

// Keys returns the keys in no particular order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	return keys
}

// Lookup returns the mesh names for key, preferring an exact match.
func (t Table) Lookup(key string) ([]string, bool) {
	if names, ok := t[key]; ok {
		return names, true
	}
	for k, names := range t {
		if strings.EqualFold(k, key) {
			return names, true
		}
	}
	return nil, false
}
